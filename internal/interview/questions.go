// Package interview holds role-specific interview question banks.
package interview

import "strings"

// QuestionBank groups the questions asked for a role.
type QuestionBank struct {
	Technical  []string `json:"technical"`
	Behavioral []string `json:"behavioral"`
}

type roleBank struct {
	role string
	bank QuestionBank
}

// banks are matched in order; the first role contained in the query wins.
var banks = []roleBank{
	{
		role: "software engineer",
		bank: QuestionBank{
			Technical: []string{
				"Explain the difference between REST and GraphQL APIs",
				"How would you optimize a slow database query?",
				"Describe your approach to code testing and debugging",
				"What are the SOLID principles in software development?",
			},
			Behavioral: []string{
				"Tell me about a challenging bug you fixed",
				"How do you handle conflicting requirements from stakeholders?",
				"Describe a time you had to learn a new technology quickly",
			},
		},
	},
	{
		role: "data scientist",
		bank: QuestionBank{
			Technical: []string{
				"Explain the bias-variance tradeoff in machine learning",
				"How would you handle missing data in a dataset?",
				"Describe the difference between supervised and unsupervised learning",
				"What metrics would you use to evaluate a classification model?",
			},
			Behavioral: []string{
				"Tell me about a data project that didn't go as planned",
				"How do you communicate complex findings to non-technical stakeholders?",
				"Describe your process for exploring a new dataset",
			},
		},
	},
	{
		role: "product manager",
		bank: QuestionBank{
			Technical: []string{
				"How do you prioritize product features?",
				"Explain A/B testing and when you'd use it",
				"How do you gather and analyze user feedback?",
				"What metrics matter most for product success?",
			},
			Behavioral: []string{
				"Tell me about a product decision you had to make with limited data",
				"How do you handle disagreements between engineering and design teams?",
				"Describe a time you had to pivot a product strategy",
			},
		},
	},
}

// Roles lists the roles that have a dedicated bank.
func Roles() []string {
	roles := make([]string, 0, len(banks))
	for _, b := range banks {
		roles = append(roles, b.role)
	}
	return roles
}

// QuestionsFor returns the bank for the first known role mentioned in role,
// or the software engineer bank when none is mentioned.
func QuestionsFor(role string) QuestionBank {
	lower := strings.ToLower(role)
	for _, b := range banks {
		if strings.Contains(lower, b.role) {
			return b.bank.clone()
		}
	}
	return banks[0].bank.clone()
}

func (q QuestionBank) clone() QuestionBank {
	return QuestionBank{
		Technical:  append([]string(nil), q.Technical...),
		Behavioral: append([]string(nil), q.Behavioral...),
	}
}
