package service

import (
	"context"
	"strings"
	"time"

	"github.com/haythbl004/uni-console/internal/models"
	"github.com/haythbl004/uni-console/internal/session"
	appErrors "github.com/haythbl004/uni-console/pkg/errors"
)

// Page is one rendered panel page: the visible slice, the pager and
// the live flash message, if any.
type Page[T any] struct {
	Items      []T                `json:"items"`
	Pagination *models.Pagination `json:"pagination"`
	Flash      *models.Flash      `json:"flash,omitempty"`
}

// flashMessage picks the text for an error flash: the upstream's own
// error body when it sent one, otherwise the panel's fallback line.
func flashMessage(err error, fallback string) string {
	appErr := appErrors.FromError(err)
	if appErr != nil && appErr.Code == appErrors.ErrUpstream.Code {
		msg := appErr.Message
		if msg != "" && !strings.HasPrefix(msg, "upstream returned status") {
			return msg
		}
	}
	return fallback
}

// panelFlash stores a flash on the session under the panel key. Store
// failures only cost the message, so they are swallowed.
type flashWriter interface {
	Save(ctx context.Context, s *session.Session) error
}

func setFlash(ctx context.Context, store flashWriter, sess *session.Session, panel, kind, message string, ttl time.Duration) {
	sess.SetFlash(panel, models.NewFlash(kind, message, ttl))
	_ = store.Save(ctx, sess)
}
