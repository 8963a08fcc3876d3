package service

import "github.com/lampstand/berea/internal/generator"

// placeholderQuestions is the fixed fallback set substituted when the
// generator times out or returns nothing usable. The educator is told the
// quiz needs manual review before its start time.
func placeholderQuestions() []generator.GeneratedQuestion {
	return []generator.GeneratedQuestion{
		{
			Text: "PLACEHOLDER: Question generation did not complete. Which book opens the New Testament?",
			Options: map[string]string{
				"A": "Matthew", "B": "Mark", "C": "Luke", "D": "John",
			},
			CorrectAnswer: "A",
			Explanation:   "Replace this placeholder before the quiz starts.",
			Reference:     "Matthew 1:1",
			Book:          "Matthew",
			ChapterVerse:  "1:1",
		},
		{
			Text: "PLACEHOLDER: Question generation did not complete. Which book opens the Old Testament?",
			Options: map[string]string{
				"A": "Exodus", "B": "Genesis", "C": "Leviticus", "D": "Numbers",
			},
			CorrectAnswer: "B",
			Explanation:   "Replace this placeholder before the quiz starts.",
			Reference:     "Genesis 1:1",
			Book:          "Genesis",
			ChapterVerse:  "1:1",
		},
		{
			Text: "PLACEHOLDER: Question generation did not complete. How many books are in the Protestant canon?",
			Options: map[string]string{
				"A": "27", "B": "39", "C": "66", "D": "73",
			},
			CorrectAnswer: "C",
			Explanation:   "Replace this placeholder before the quiz starts.",
		},
	}
}
