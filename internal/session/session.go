package session

import (
	"context"
	"time"

	"github.com/haythbl004/uni-console/internal/models"
)

// Session is one authenticated console session. It carries the
// upstream cookie captured at login plus the server-side state the
// browser used to keep locally: the schedule navigation position and
// the per-panel flash messages.
type Session struct {
	ID             string                   `json:"id"`
	User           models.User              `json:"user"`
	UpstreamCookie string                   `json:"upstreamCookie"`
	Nav            models.NavState          `json:"nav"`
	Flashes        map[string]*models.Flash `json:"flashes,omitempty"`
	CreatedAt      time.Time                `json:"createdAt"`
}

// Flash returns the live flash for a panel, dropping it once expired.
func (s *Session) Flash(panel string, now time.Time) *models.Flash {
	f := s.Flashes[panel]
	if f.Expired(now) {
		delete(s.Flashes, panel)
		return nil
	}
	return f
}

// SetFlash replaces the panel's flash. A new message always displaces
// the previous one, so success and error never show together.
func (s *Session) SetFlash(panel string, f *models.Flash) {
	if s.Flashes == nil {
		s.Flashes = make(map[string]*models.Flash)
	}
	s.Flashes[panel] = f
}

// Store persists console sessions. Sessions expire on their own after
// the configured TTL; Delete is the single logout/expiry path.
type Store interface {
	Create(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}
