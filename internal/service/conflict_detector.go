package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sukanyaghosh74/sstudize-task/internal/models"
)

// ConflictDetector finds opposing concerns between teacher and parent
// feedback texts.
type ConflictDetector interface {
	Detect(teacherContent, parentContent string) []models.FeedbackConflict
}

// KeywordConflictDetector matches an opposing-keyword table against the two
// feedback texts. Matching is case-insensitive substring containment; every
// keyword found in the teacher text paired with any opposite found in the
// parent text yields one conflict record.
type KeywordConflictDetector struct {
	opposites map[string][]string
}

func NewKeywordConflictDetector() *KeywordConflictDetector {
	return &KeywordConflictDetector{
		opposites: map[string][]string{
			"more_time": {"less_time", "reduce", "decrease"},
			"less_time": {"more_time", "increase", "extend"},
			"difficult": {"easy", "simple", "basic"},
			"easy":      {"difficult", "challenging", "advanced"},
		},
	}
}

func (d *KeywordConflictDetector) Detect(teacherContent, parentContent string) []models.FeedbackConflict {
	teacher := strings.ToLower(teacherContent)
	parent := strings.ToLower(parentContent)

	keywords := make([]string, 0, len(d.opposites))
	for keyword := range d.opposites {
		keywords = append(keywords, keyword)
	}
	sort.Strings(keywords)

	var conflicts []models.FeedbackConflict
	for _, keyword := range keywords {
		if !strings.Contains(teacher, keyword) {
			continue
		}
		for _, opposite := range d.opposites[keyword] {
			if strings.Contains(parent, opposite) {
				conflicts = append(conflicts, models.FeedbackConflict{
					Type:           "time_difficulty_conflict",
					TeacherConcern: keyword,
					ParentConcern:  opposite,
					Description:    fmt.Sprintf("Conflicting views on %s vs %s", keyword, opposite),
				})
				break
			}
		}
	}
	return conflicts
}
