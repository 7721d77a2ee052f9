package flash

import (
	"encoding/gob"
	"fmt"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Severity keys for flash messages.
const (
	SeverityError   = "error"
	SeveritySuccess = "success"
)

const (
	messagesKey = "flash.messages"
	draftPrefix = "flash.draft."
)

func init() {
	// Session values cross the cookie boundary gob-encoded.
	gob.Register(map[string][]string{})
	gob.Register(map[string]string{})
}

// Mailbox is a per-session, single-read message queue keyed by severity.
// Messages pushed before a redirect are delivered exactly once by the next
// DrainAll. It also stashes form drafts so a failed update can repopulate
// the edit form after its redirect.
type Mailbox struct {
	session sessions.Session
}

// New returns the mailbox bound to the request's session.
func New(c *gin.Context) *Mailbox {
	return &Mailbox{session: sessions.Default(c)}
}

// NewWithSession binds a mailbox to an explicit session.
func NewWithSession(s sessions.Session) *Mailbox {
	return &Mailbox{session: s}
}

// Push appends messages under the given severity.
func (m *Mailbox) Push(severity string, messages ...string) error {
	if len(messages) == 0 {
		return nil
	}

	queued := m.messages()
	queued[severity] = append(queued[severity], messages...)
	m.session.Set(messagesKey, queued)

	if err := m.session.Save(); err != nil {
		return fmt.Errorf("failed to save flash messages: %w", err)
	}
	return nil
}

// DrainAll returns every queued message grouped by severity and clears the
// queue, so each message survives exactly one redirect hop.
func (m *Mailbox) DrainAll() (map[string][]string, error) {
	queued := m.messages()
	if len(queued) == 0 {
		return queued, nil
	}

	m.session.Delete(messagesKey)
	if err := m.session.Save(); err != nil {
		return nil, fmt.Errorf("failed to clear flash messages: %w", err)
	}
	return queued, nil
}

// SaveDraft stashes raw form fields for the given record id.
func (m *Mailbox) SaveDraft(id int64, fields map[string]string) error {
	m.session.Set(draftKey(id), fields)
	if err := m.session.Save(); err != nil {
		return fmt.Errorf("failed to save form draft: %w", err)
	}
	return nil
}

// TakeDraft returns the stashed fields for id, if any, and clears them.
func (m *Mailbox) TakeDraft(id int64) (map[string]string, bool, error) {
	raw := m.session.Get(draftKey(id))
	if raw == nil {
		return nil, false, nil
	}

	fields, ok := raw.(map[string]string)
	m.session.Delete(draftKey(id))
	if err := m.session.Save(); err != nil {
		return nil, false, fmt.Errorf("failed to clear form draft: %w", err)
	}
	if !ok {
		return nil, false, nil
	}
	return fields, true, nil
}

// ClearDraft removes any stashed fields for id.
func (m *Mailbox) ClearDraft(id int64) error {
	if m.session.Get(draftKey(id)) == nil {
		return nil
	}
	m.session.Delete(draftKey(id))
	if err := m.session.Save(); err != nil {
		return fmt.Errorf("failed to clear form draft: %w", err)
	}
	return nil
}

func (m *Mailbox) messages() map[string][]string {
	raw := m.session.Get(messagesKey)
	if raw == nil {
		return map[string][]string{}
	}
	queued, ok := raw.(map[string][]string)
	if !ok {
		return map[string][]string{}
	}
	return queued
}

func draftKey(id int64) string {
	return fmt.Sprintf("%s%d", draftPrefix, id)
}
