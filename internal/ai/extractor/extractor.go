package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared/constant"
)

// Extractor derives structured fields from raw resume or job-description text
type Extractor struct {
	client *openai.Client
	model  string
}

// NewExtractor creates a new field extractor
func NewExtractor(apiKey string) *Extractor {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &Extractor{
		client: &client,
		model:  "gpt-4o-mini",
	}
}

// ResumeData is the validated extraction result for one resume
type ResumeData struct {
	Name           string            `json:"name"`
	Email          string            `json:"email"`
	Phone          string            `json:"phone"`
	Location       string            `json:"location"`
	Summary        string            `json:"summary"`
	Skills         []string          `json:"skills"`
	Experience     []ExperienceEntry `json:"experience"`
	Education      []EducationEntry  `json:"education"`
	Certifications []string          `json:"certifications,omitempty"`
}

// ExperienceEntry is one work history item
type ExperienceEntry struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"start_date"` // YYYY-MM format
	EndDate     string `json:"end_date"`   // YYYY-MM or "Present"
	Description string `json:"description"`
}

// EducationEntry is one education history item
type EducationEntry struct {
	Degree         string `json:"degree"`
	Institution    string `json:"institution"`
	Location       string `json:"location,omitempty"`
	GraduationDate string `json:"graduation_date"` // YYYY-MM format
}

// JobData is the validated extraction result for one job description
type JobData struct {
	Title        string `json:"title"`
	Company      string `json:"company"`
	Location     string `json:"location"`
	SalaryRange  string `json:"salary_range"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
}

const resumePrompt = `Extract all information from the resume text below into this JSON structure:

{
  "name": string,
  "email": string,
  "phone": string,
  "location": string,
  "summary": string (professional summary, max 250 words),
  "skills": string[] (technical and soft skills),
  "experience": [{
    "title": string,
    "company": string,
    "location": string (optional),
    "start_date": string (YYYY-MM format),
    "end_date": string (YYYY-MM or "Present"),
    "description": string (key achievements and duties)
  }],
  "education": [{
    "degree": string,
    "institution": string,
    "location": string (optional),
    "graduation_date": string (YYYY-MM format)
  }],
  "certifications": string[] (optional)
}

IMPORTANT:
- Extract ALL information accurately
- If a field is not available, use an empty string or empty array
- Maintain chronological order (newest first)
- Return ONLY the JSON, no explanatory text

Resume text:
`

const jobPrompt = `Extract the job posting details from the text below into this JSON structure:

{
  "title": string,
  "company": string,
  "location": string,
  "salary_range": string (e.g. "$120k-$150k", empty if not stated),
  "description": string (role overview and responsibilities),
  "requirements": string (required skills, experience and qualifications)
}

IMPORTANT:
- If a field is not available, use an empty string
- Return ONLY the JSON, no explanatory text

Job description text:
`

// ExtractResume extracts structured candidate fields from resume text.
// A result without a candidate name is rejected rather than silently defaulted.
func (e *Extractor) ExtractResume(ctx context.Context, text string) (*ResumeData, error) {
	content, err := e.complete(ctx,
		"You are a professional resume parser. Extract information from resume text and return ONLY valid JSON.",
		resumePrompt+text,
	)
	if err != nil {
		return nil, err
	}

	var data ResumeData
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		return nil, fmt.Errorf("failed to parse resume JSON: %w", err)
	}

	if strings.TrimSpace(data.Name) == "" {
		return nil, errors.New("extraction returned no candidate name")
	}
	data.applyDefaults()

	return &data, nil
}

// ExtractJob extracts structured posting fields from job-description text.
// A result without a title is rejected.
func (e *Extractor) ExtractJob(ctx context.Context, text string) (*JobData, error) {
	content, err := e.complete(ctx,
		"You are a professional job posting parser. Extract information from job description text and return ONLY valid JSON.",
		jobPrompt+text,
	)
	if err != nil {
		return nil, err
	}

	var data JobData
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		return nil, fmt.Errorf("failed to parse job JSON: %w", err)
	}

	if strings.TrimSpace(data.Title) == "" {
		return nil, errors.New("extraction returned no job title")
	}

	return &data, nil
}

// complete runs one JSON-mode chat completion
func (e *Extractor) complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	completion, err := e.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		Model: e.model,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{
				Type: constant.JSONObject("json_object"),
			},
		},
		Temperature: openai.Float(0.1),
		MaxTokens:   openai.Int(4000),
	})
	if err != nil {
		return "", fmt.Errorf("openai api error: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", errors.New("no response from openai")
	}

	return completion.Choices[0].Message.Content, nil
}

// applyDefaults fills nil collections so downstream code can range freely
func (d *ResumeData) applyDefaults() {
	if d.Skills == nil {
		d.Skills = []string{}
	}
	if d.Experience == nil {
		d.Experience = []ExperienceEntry{}
	}
	if d.Education == nil {
		d.Education = []EducationEntry{}
	}
	if d.Certifications == nil {
		d.Certifications = []string{}
	}
}
