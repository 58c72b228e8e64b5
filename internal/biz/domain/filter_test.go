package domain

import (
	"testing"
	"time"
)

func TestFilterPolicy_Allows_NoListsConfigured(t *testing.T) {
	policy := NewFilterPolicy(false, nil, nil)

	if !policy.Allows("100") {
		t.Error("Expected every chat to pass with no lists configured")
	}
}

func TestFilterPolicy_Allows_WhitelistMember(t *testing.T) {
	policy := NewFilterPolicy(false, []string{"100", "200"}, nil)

	if !policy.Allows("100") {
		t.Error("Expected whitelisted chat to pass")
	}
}

func TestFilterPolicy_Allows_WhitelistNonMember(t *testing.T) {
	policy := NewFilterPolicy(false, []string{"100"}, nil)

	if policy.Allows("200") {
		t.Error("Expected chat outside whitelist to be dropped")
	}
}

func TestFilterPolicy_Allows_BlacklistMember(t *testing.T) {
	policy := NewFilterPolicy(false, nil, []string{"300"})

	if policy.Allows("300") {
		t.Error("Expected blacklisted chat to be dropped")
	}
	if !policy.Allows("400") {
		t.Error("Expected chat outside blacklist to pass")
	}
}

func TestFilterPolicy_Allows_BlacklistWinsOverWhitelist(t *testing.T) {
	policy := NewFilterPolicy(false, []string{"100"}, []string{"100"})

	if policy.Allows("100") {
		t.Error("Expected blacklist to win when a chat is on both lists")
	}
}

func TestFilterPolicy_Allows_IgnoresEmptyEntries(t *testing.T) {
	policy := NewFilterPolicy(false, []string{""}, nil)

	if !policy.Allows("100") {
		t.Error("Expected empty whitelist entries to impose no restriction")
	}
}

func TestMuted_AbsentValue(t *testing.T) {
	if Muted(0, false, time.Now()) {
		t.Error("Expected absent mute-until to mean not muted")
	}
}

func TestMuted_ZeroValue(t *testing.T) {
	if Muted(0, true, time.Now()) {
		t.Error("Expected zero mute-until to mean not muted")
	}
}

func TestMuted_ForeverSentinel(t *testing.T) {
	if !Muted(MuteForever, true, time.Now()) {
		t.Error("Expected the forever sentinel to mean muted")
	}
}

func TestMuted_FutureTimestamp(t *testing.T) {
	now := time.Now()
	future := int(now.Add(1 * time.Hour).Unix())

	if !Muted(future, true, now) {
		t.Error("Expected a future mute-until to mean muted")
	}
}

func TestMuted_PastTimestamp(t *testing.T) {
	now := time.Now()
	past := int(now.Add(-1 * time.Hour).Unix())

	if Muted(past, true, now) {
		t.Error("Expected an expired mute-until to mean not muted")
	}
}
