package engine

import (
	"sort"
	"strings"

	"github.com/unistat/admissions/cmd/admissions/models"
)

// OverlapKeySeparator joins sorted program codes into a bucket key
const OverlapKeySeparator = "+"

// CountOverlaps classifies every applicant's deduplicated preference set
// against the subsets of the configured program codes. Consent and
// assignment play no role here.
//
// A set counts in exactly one bucket: the one matching it exactly. Sets
// with fewer than two codes, or containing a code outside the configured
// set, count nowhere. Every subset of size >= 2 is reported, zero or not.
func CountOverlaps(applicants []models.Applicant, programs []models.Program) map[string]int {
	known := make(map[string]bool, len(programs))
	codes := make([]string, 0, len(programs))
	for _, p := range programs {
		known[p.Code] = true
		codes = append(codes, p.Code)
	}
	sort.Strings(codes)

	counts := make(map[string]int)
	for _, subset := range enumerateSubsets(codes) {
		counts[strings.Join(subset, OverlapKeySeparator)] = 0
	}

	for _, a := range applicants {
		set := dedupeSorted(a.Priorities)
		if len(set) < 2 {
			continue
		}
		valid := true
		for _, code := range set {
			if !known[code] {
				valid = false
				break
			}
		}
		if !valid {
			continue
		}
		key := strings.Join(set, OverlapKeySeparator)
		if _, tracked := counts[key]; tracked {
			counts[key]++
		}
	}

	return counts
}

// enumerateSubsets returns all subsets of size >= 2 of the sorted code
// list, each subset itself sorted
func enumerateSubsets(codes []string) [][]string {
	var subsets [][]string
	n := len(codes)
	for mask := 1; mask < 1<<n; mask++ {
		var subset []string
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				subset = append(subset, codes[i])
			}
		}
		if len(subset) >= 2 {
			subsets = append(subsets, subset)
		}
	}
	return subsets
}

func dedupeSorted(priorities []string) []string {
	seen := make(map[string]bool, len(priorities))
	var out []string
	for _, code := range priorities {
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}
