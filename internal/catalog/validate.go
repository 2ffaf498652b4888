package catalog

import (
	"fmt"
	"strings"
)

// validateStreams performs structural checks on the catalog. Returns a
// combined error describing all problems found, or nil if valid.
func validateStreams(streams []Stream) error {
	var errs []string

	if len(streams) == 0 {
		errs = append(errs, "catalog has no streams")
	}

	seen := make(map[string]bool, len(streams))
	for _, st := range streams {
		if st.ID == "" || st.Name == "" {
			errs = append(errs, fmt.Sprintf("stream %q: id and name are required", st.ID))
		}
		if seen[st.ID] {
			errs = append(errs, fmt.Sprintf("duplicate stream ID: %q", st.ID))
		}
		seen[st.ID] = true

		if len(st.Subjects) == 0 {
			errs = append(errs, fmt.Sprintf("stream %q has no subjects", st.ID))
		}
		subj := make(map[string]bool, len(st.Subjects))
		for _, s := range st.Subjects {
			if s.ID == "" || s.Name == "" {
				errs = append(errs, fmt.Sprintf("stream %q subject %q: id and name are required", st.ID, s.ID))
			}
			if subj[s.ID] {
				errs = append(errs, fmt.Sprintf("stream %q: duplicate subject ID %q", st.ID, s.ID))
			}
			subj[s.ID] = true
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
