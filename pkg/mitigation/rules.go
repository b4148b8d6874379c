/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: rules.go
Description: Mitigation rule engine for ApkScope. Maps a declared permission set to
deduplicated, human-readable risk mitigation advice using a fixed ordered rule table.
Pure function - no I/O, no side effects, deterministic output order.
*/

package mitigation

import (
	"sort"
	"strings"
)

// DefaultAdvisory is returned when no rule matches the permission set
const DefaultAdvisory = "No specific mitigations needed based on permissions."

// Rule maps permission-identifier substrings to a single advisory. A rule
// matches when any of its substrings occurs in a permission identifier
// (case-sensitive, matching canonical permission strings).
type Rule struct {
	Substrings []string
	Advisory   string
}

// rules is the static rule table, loaded at process start and never mutated.
// Order matters only for output stability, not correctness.
var rules = []Rule{
	{
		Substrings: []string{"INTERNET"},
		Advisory:   "Ensure secure transmission with HTTPS.",
	},
	{
		Substrings: []string{"ACCESS_FINE_LOCATION", "ACCESS_COARSE_LOCATION"},
		Advisory:   "Alert users when accessing location data.",
	},
	{
		Substrings: []string{"READ_CONTACTS"},
		Advisory:   "Limit access to contacts to only necessary features.",
	},
	{
		Substrings: []string{"READ_SMS", "SEND_SMS"},
		Advisory:   "Inform users if app accesses or sends SMS messages.",
	},
	{
		Substrings: []string{"CAMERA"},
		Advisory:   "Implement proper camera access controls and user notifications.",
	},
	{
		Substrings: []string{"RECORD_AUDIO"},
		Advisory:   "Implement proper audio recording controls and user notifications.",
	},
}

// Rules returns a copy of the rule table for display purposes
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// For returns the deduplicated advisory list for a permission set. The input
// is iterated in sorted order and rules in table order, so the output is
// deterministic regardless of caller iteration order. An empty or unmatched
// permission set yields the single default advisory.
func For(permissions []string) []string {
	sorted := make([]string, len(permissions))
	copy(sorted, permissions)
	sort.Strings(sorted)

	seen := make(map[string]struct{})
	var advisories []string
	for _, perm := range sorted {
		for _, rule := range rules {
			if !matches(rule, perm) {
				continue
			}
			if _, dup := seen[rule.Advisory]; dup {
				continue
			}
			seen[rule.Advisory] = struct{}{}
			advisories = append(advisories, rule.Advisory)
		}
	}

	if len(advisories) == 0 {
		return []string{DefaultAdvisory}
	}
	return advisories
}

func matches(rule Rule, permission string) bool {
	for _, sub := range rule.Substrings {
		if strings.Contains(permission, sub) {
			return true
		}
	}
	return false
}
