package features

import (
	"strings"

	"github.com/talentbridge/matchengine/internal/types"
)

// minKeywordLength filters noise tokens ("a", "of", "to") out of the
// keyword set
const minKeywordLength = 3

// ExtractJob normalizes a raw job posting into a JobFeatures struct.
// Keywords are the lower-cased whitespace tokens of
// title+description+requirements with length > 2, deduplicated in
// first-seen order.
func ExtractJob(j *types.Job) types.JobFeatures {
	if j == nil {
		j = &types.Job{}
	}

	text := strings.ToLower(j.Title + " " + j.Description + " " + j.Requirements)
	words := strings.Fields(text)

	keywords := make([]string, 0, len(words))
	seen := make(map[string]bool)
	for _, w := range words {
		if len(w) < minKeywordLength || seen[w] {
			continue
		}
		seen[w] = true
		keywords = append(keywords, w)
	}

	return types.JobFeatures{
		Title:        strings.ToLower(j.Title),
		Description:  strings.ToLower(j.Description),
		Requirements: strings.ToLower(j.Requirements),
		Keywords:     keywords,
		Location:     strings.ToLower(j.Location),
		JobType:      strings.ToLower(j.JobType),
		PostingType:  j.PostingType,
		Salary:       j.Salary,
	}
}
