package extract

import (
	"reflect"
	"testing"
)

func TestSplitProducts_DictatedOrderWithQuantity(t *testing.T) {
	s := NewSplitter(DefaultVocabulary())

	items := s.SplitProducts("запиши 79991234567 аспирин 2 пачки и парацетамол")

	want := []string{"• аспирин 2 пачки", "• парацетамол"}
	if !reflect.DeepEqual(items, want) {
		t.Fatalf("unexpected items:\nwant: %v\ngot:  %v", want, items)
	}
}

func TestSplitProducts_LongestStopPhraseRemovedFirst(t *testing.T) {
	s := NewSplitter(DefaultVocabulary())

	// "номер телефона" must go away as one phrase, not leave "телефона"
	// behind after a shorter "номер" removal.
	items := s.SplitProducts("ибупрофен а номер телефона 89991234567")

	want := []string{"• ибупрофен"}
	if !reflect.DeepEqual(items, want) {
		t.Fatalf("unexpected items:\nwant: %v\ngot:  %v", want, items)
	}
}

func TestSplitProducts_QuantityBoundaryMarksNewItem(t *testing.T) {
	s := NewSplitter(DefaultVocabulary())

	// No conjunction between items: the quantity+unit pair ends the first
	// item and the next word starts a new one.
	items := s.SplitProducts("79991234567 нурофен 2 упаковки цитрамон")

	want := []string{"• нурофен 2 упаковки", "• цитрамон"}
	if !reflect.DeepEqual(items, want) {
		t.Fatalf("unexpected items:\nwant: %v\ngot:  %v", want, items)
	}
}

func TestSplitProducts_CommaSeparatorOutsideNumbers(t *testing.T) {
	s := NewSplitter(DefaultVocabulary())

	items := s.SplitProducts("89991234567 анальгин, валидол")

	want := []string{"• анальгин", "• валидол"}
	if !reflect.DeepEqual(items, want) {
		t.Fatalf("unexpected items:\nwant: %v\ngot:  %v", want, items)
	}
}

func TestSplitProducts_EdgeFillersTrimmed(t *testing.T) {
	s := NewSplitter(DefaultVocabulary())

	items := s.SplitProducts("запиши мне на 89991234567 для глицин")

	want := []string{"• глицин"}
	if !reflect.DeepEqual(items, want) {
		t.Fatalf("unexpected items:\nwant: %v\ngot:  %v", want, items)
	}
}

func TestSplitProducts_NothingLeftAfterCleanup(t *testing.T) {
	s := NewSplitter(DefaultVocabulary())

	if items := s.SplitProducts("запиши 89991234567 пожалуйста"); len(items) != 0 {
		t.Fatalf("expected no items, got %v", items)
	}
	if items := s.SplitProducts(""); len(items) != 0 {
		t.Fatalf("expected no items on empty input, got %v", items)
	}
}
