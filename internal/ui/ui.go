// Package ui holds shared helpers for the screen models.
package ui

import (
	"time"

	"github.com/clanwatch/clanwatch/internal/repo"
)

// OpTimeout bounds a single user-triggered repository call.
const OpTimeout = 30 * time.Second

// FaultMessage maps a repository fault to a user-facing message.
// Controllers never surface raw transport errors.
func FaultMessage(err error, action string) string {
	f, ok := repo.AsFault(err)
	if !ok {
		return action + " failed"
	}
	switch f.Kind {
	case repo.FaultNoSession:
		return "not registered yet"
	case repo.FaultTransport:
		return action + " failed: server unreachable"
	case repo.FaultServerRejected:
		return action + " failed: rejected by server"
	case repo.FaultDecode:
		return action + " failed: unexpected server response"
	default:
		return action + " failed"
	}
}
