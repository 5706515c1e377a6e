package generator

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/davidleathers/placeholder-numbers/internal/infrastructure/clock"
)

// Session identifies one process run; its id is shown next to generated numbers
type Session struct {
	id string
}

// NewSession builds an id of the form panda_<unix-ms>_<9 random chars>
func NewSession(clk clock.Clock) Session {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return Session{id: "panda_" + strconv.FormatInt(clk.Now().UnixMilli(), 10) + "_" + suffix}
}

// ID returns the full session id
func (s Session) ID() string {
	return s.id
}

// Short returns the last n characters of the id
func (s Session) Short(n int) string {
	if n >= len(s.id) {
		return s.id
	}
	return s.id[len(s.id)-n:]
}
