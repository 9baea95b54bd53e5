package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared/constant"
)

// Analyzer produces a holistic candidate-to-job assessment
type Analyzer struct {
	client *openai.Client
	model  string
}

// NewAnalyzer creates a new match analyzer
func NewAnalyzer(apiKey string) *Analyzer {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &Analyzer{
		client: &client,
		model:  "gpt-4o-mini",
	}
}

// Assessment is the model's verdict on one candidate against one job.
// Scores are reported on a 0-100 scale but are not trusted to be in range;
// callers clamp before persisting.
type Assessment struct {
	OverallScore     int      `json:"overall_score"`
	SkillsScore      int      `json:"skills_score"`
	ExperienceScore  int      `json:"experience_score"`
	EducationScore   int      `json:"education_score"`
	IndustryScore    int      `json:"industry_score"`
	Strengths        []string `json:"strengths"`
	Weaknesses       []string `json:"weaknesses"`
	Recommendation   string   `json:"recommendation"`
	DetailedAnalysis string   `json:"detailed_analysis"`
	Passed           bool     `json:"passed"`
}

const systemPrompt = `You are an expert technical recruiter that evaluates how well a candidate's resume matches a job description.

Your goal is to:
- Analyze the resume in detail.
- Compare it with the provided job description and requirements.
- Identify relevant experience, skills, and education.
- Point out missing or weak areas.
- Assign an overall match score from 0 to 100 plus sub-scores per dimension.

Base all reasoning only on the provided text. Do not make up data or assume
experience not explicitly mentioned. Return only valid JSON.`

const userPromptFormat = `Evaluate the candidate below against the job posting and return your result as a single JSON object in this format:

{
  "overall_score": number (0-100),
  "skills_score": number (0-100),
  "experience_score": number (0-100),
  "education_score": number (0-100),
  "industry_score": number (0-100),
  "strengths": [string],
  "weaknesses": [string],
  "recommendation": string (one short paragraph: hire, interview, or pass, and why),
  "detailed_analysis": string (detailed comparison of candidate vs requirements),
  "passed": boolean (true if the candidate should move forward)
}

=== JOB POSTING ===
%s

=== CANDIDATE RESUME ===
%s`

// Assess evaluates one candidate against one job
func (a *Analyzer) Assess(ctx context.Context, jobText, candidateText string) (*Assessment, error) {
	completion, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(fmt.Sprintf(userPromptFormat, jobText, candidateText)),
		},
		Model: a.model,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{
				Type: constant.JSONObject("json_object"),
			},
		},
		Temperature: openai.Float(0.2),
		MaxTokens:   openai.Int(2000),
	})
	if err != nil {
		return nil, fmt.Errorf("openai api error: %w", err)
	}

	if len(completion.Choices) == 0 {
		return nil, errors.New("no response from openai")
	}

	var assessment Assessment
	if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), &assessment); err != nil {
		return nil, fmt.Errorf("failed to parse assessment JSON: %w", err)
	}

	if assessment.Strengths == nil {
		assessment.Strengths = []string{}
	}
	if assessment.Weaknesses == nil {
		assessment.Weaknesses = []string{}
	}

	return &assessment, nil
}
