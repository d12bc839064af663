package mailintake

import (
	"fmt"
	"sort"
	"strings"
	"time"

	imap "github.com/BrianLeishman/go-imap"

	"apteka_notify_backend/platform/config"
	"apteka_notify_backend/platform/logger"
)

// Monitor fetches unread order emails over IMAP. Each FetchUnread call
// dials a fresh connection, which keeps the monitor stateless across the
// scheduler's check interval and sidesteps half-dead IMAP sessions.
type Monitor struct {
	cfg      config.MailConfig
	log      *logger.Logger
	decoders *AttachmentDecoders
}

func NewMonitor(cfg config.MailConfig, log *logger.Logger, decoders *AttachmentDecoders) *Monitor {
	return &Monitor{cfg: cfg, log: log, decoders: decoders}
}

// FetchUnread returns unread emails received since the given date, filtered
// to the configured senders (or all senders when no filter is set). Fetched
// emails are marked seen so the next poll does not pick them up again.
func (m *Monitor) FetchUnread(since time.Time) ([]EmailContent, error) {
	dialer, err := imap.New(
		m.cfg.GetIMAPUser(),
		m.cfg.GetIMAPPassword(),
		m.cfg.GetIMAPHost(),
		m.cfg.GetIMAPPort(),
	)
	if err != nil {
		return nil, fmt.Errorf("imap connect: %w", err)
	}
	defer dialer.Close()

	if err := dialer.SelectFolder(m.cfg.GetIMAPFolder()); err != nil {
		return nil, fmt.Errorf("imap select %q: %w", m.cfg.GetIMAPFolder(), err)
	}

	// IMAP SINCE wants the DD-MMM-YYYY form.
	sinceStr := since.Format("02-Jan-2006")

	var searches []string
	filters := m.cfg.GetMailFromFilters()
	if len(filters) == 0 {
		searches = append(searches, fmt.Sprintf("UNSEEN SINCE %s", sinceStr))
	}
	for _, sender := range filters {
		searches = append(searches, fmt.Sprintf("UNSEEN SINCE %s FROM %q", sinceStr, sender))
	}

	var contents []EmailContent
	for _, search := range searches {
		uids, err := dialer.GetUIDs(search)
		if err != nil {
			m.log.Error("imap search failed", "search", search, "error", err)
			continue
		}
		if len(uids) == 0 {
			continue
		}

		emails, err := dialer.GetEmails(uids...)
		if err != nil {
			m.log.Error("imap fetch failed", "count", len(uids), "error", err)
			continue
		}

		for _, uid := range sortedUIDs(emails) {
			contents = append(contents, m.buildContent(uid, emails[uid]))
			if err := dialer.MarkSeen(uid); err != nil {
				m.log.Error("imap mark seen failed", "uid", uid, "error", err)
			}
		}
	}

	return contents, nil
}

func (m *Monitor) buildContent(uid int, em *imap.Email) EmailContent {
	body := strings.TrimSpace(em.Text)
	if body == "" {
		body = HTMLToText(em.HTML)
	}

	files := make([]AttachmentFile, 0, len(em.Attachments))
	for _, att := range em.Attachments {
		files = append(files, AttachmentFile{Name: att.Name, Content: att.Content})
	}

	return EmailContent{
		UID:             uid,
		Subject:         em.Subject,
		Sender:          formatSender(em.From),
		BodyText:        body,
		BodyHTML:        em.HTML,
		AttachmentsText: m.decoders.CombineAttachments(files),
	}
}

func formatSender(from imap.EmailAddresses) string {
	for addr, name := range from {
		if name != "" {
			return fmt.Sprintf("%s <%s>", name, addr)
		}
		return addr
	}
	return ""
}

func sortedUIDs(emails map[int]*imap.Email) []int {
	uids := make([]int, 0, len(emails))
	for uid := range emails {
		uids = append(uids, uid)
	}
	sort.Ints(uids)
	return uids
}
