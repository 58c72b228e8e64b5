package domain

import (
	"time"
)

// MuteForever is the sentinel Telegram uses for "muted indefinitely".
const MuteForever = 1<<31 - 1

// FilterPolicy controls which chats qualify for forwarding. Immutable after
// load.
type FilterPolicy struct {
	MuteFilter bool
	Allow      map[string]struct{}
	Deny       map[string]struct{}
}

// NewFilterPolicy builds a policy from allow/deny chat id lists. An empty
// allow list means no restriction.
func NewFilterPolicy(muteFilter bool, allow, deny []string) FilterPolicy {
	return FilterPolicy{
		MuteFilter: muteFilter,
		Allow:      toSet(allow),
		Deny:       toSet(deny),
	}
}

// Allows reports whether chatID passes the allow/deny lists. The deny list
// is checked after the allow list; deny wins when both match.
func (p FilterPolicy) Allows(chatID string) bool {
	if len(p.Allow) > 0 {
		if _, ok := p.Allow[chatID]; !ok {
			return false
		}
	}
	if len(p.Deny) > 0 {
		if _, ok := p.Deny[chatID]; ok {
			return false
		}
	}
	return true
}

// Muted resolves a raw mute-until value to a mute decision. The value
// follows Telegram notify-settings semantics: absent or zero means not
// muted, MuteForever means muted indefinitely, anything else is a unix
// timestamp that mutes the chat while it is in the future.
func Muted(muteUntil int, ok bool, now time.Time) bool {
	switch {
	case !ok, muteUntil == 0:
		return false
	case muteUntil == MuteForever:
		return true
	default:
		return int64(muteUntil) > now.Unix()
	}
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item != "" {
			set[item] = struct{}{}
		}
	}
	return set
}
