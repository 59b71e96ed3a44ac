package api

import (
	"encoding/json"
	"html/template"
	"path/filepath"
	"time"

	"github.com/mindflow/mindflow/internal/score"
)

func LoadTemplates() (*template.Template, error) {
	funcs := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		// seq returns a sequence of integers from start to end inclusive.
		"seq": func(start, end int) []int {
			if end < start {
				return []int{}
			}
			nums := make([]int, 0, end-start+1)
			for i := start; i <= end; i++ {
				nums = append(nums, i)
			}
			return nums
		},
		// performance maps an accuracy percentage to its display tier.
		"performance": func(accuracy int) score.PerformanceLevel {
			return score.Performance(accuracy)
		},
		// shortDate formats a timestamp for list rows.
		"shortDate": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return t.Format("Jan 2, 2006 15:04")
		},
		// seconds renders a duration held in seconds.
		"seconds": func(s int) string {
			return (time.Duration(s) * time.Second).String()
		},
		// json marshals a value to JSON string
		"json": func(v interface{}) (string, error) {
			b, err := json.Marshal(v)
			if err != nil {
				return "", err
			}
			return string(b), nil
		},
	}

	t := template.New("base").Funcs(funcs)

	patterns := []string{
		"web/templates/layouts/*.html",
		"web/templates/pages/*.html",
		"web/templates/partials/*.html",
	}
	for _, p := range patterns {
		if matches, _ := filepath.Glob(p); len(matches) == 0 {
			continue
		}
		if _, err := t.ParseGlob(p); err != nil {
			return nil, err
		}
	}

	return t, nil
}
