package mailintake

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"apteka_notify_backend/platform/config"
)

// Archiver keeps a copy of every fetched email in object storage. Orders
// occasionally need to be re-checked against the original message after the
// IMAP server has expired it.
type Archiver struct {
	client *minio.Client
	bucket string
}

func NewArchiver(cfg config.ArchiveConfig) (*Archiver, error) {
	client, err := minio.New(cfg.GetMinIOEndpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.GetMinIOAccessKey(), cfg.GetMinIOSecretKey(), ""),
		Secure: cfg.GetMinIOUseSSL(),
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}
	return &Archiver{client: client, bucket: cfg.GetMailArchiveBucket()}, nil
}

// EnsureBucket creates the archive bucket when it does not exist yet.
func (a *Archiver) EnsureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("bucket check: %w", err)
	}
	if exists {
		return nil
	}
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("bucket create: %w", err)
	}
	return nil
}

type archivedEmail struct {
	UID             int       `json:"uid"`
	Subject         string    `json:"subject"`
	Sender          string    `json:"sender"`
	BodyText        string    `json:"body_text"`
	BodyHTML        string    `json:"body_html,omitempty"`
	AttachmentsText string    `json:"attachments_text,omitempty"`
	FetchedAt       time.Time `json:"fetched_at"`
}

// Store writes one email as a JSON object keyed by fetch date and UID.
func (a *Archiver) Store(ctx context.Context, email EmailContent) error {
	now := time.Now()

	payload, err := json.Marshal(archivedEmail{
		UID:             email.UID,
		Subject:         email.Subject,
		Sender:          email.Sender,
		BodyText:        email.BodyText,
		BodyHTML:        email.BodyHTML,
		AttachmentsText: email.AttachmentsText,
		FetchedAt:       now,
	})
	if err != nil {
		return fmt.Errorf("marshal email: %w", err)
	}

	key := fmt.Sprintf("%s/uid-%d.json", now.Format("2006-01-02"), email.UID)
	_, err = a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(payload), int64(len(payload)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("archive put %s: %w", key, err)
	}
	return nil
}
