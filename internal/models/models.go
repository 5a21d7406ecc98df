package models

import "time"

// Wire types for the SchoolSharthi REST API. The server owns these records;
// the client never mutates them locally, it only re-fetches after mutations.

type User struct {
	ID        int        `json:"id"`
	Email     string     `json:"email"`
	Username  string     `json:"username"`
	FullName  string     `json:"full_name,omitempty"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type Note struct {
	ID            int        `json:"id"`
	Title         string     `json:"title"`
	ClassLevel    string     `json:"class_level"`
	Subject       string     `json:"subject"`
	Chapter       string     `json:"chapter"`
	Description   string     `json:"description,omitempty"`
	FileURL       string     `json:"file_url"`
	ThumbnailURL  string     `json:"thumbnail_url,omitempty"`
	UploadedBy    int        `json:"uploaded_by"`
	ViewsCount    int        `json:"views_count"`
	DownloadCount int        `json:"download_count"`
	IsApproved    bool       `json:"is_approved"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
}

type PYQ struct {
	ID               int        `json:"id"`
	Title            string     `json:"title"`
	ExamType         string     `json:"exam_type"`
	Year             int        `json:"year"`
	ClassLevel       string     `json:"class_level,omitempty"`
	Subject          string     `json:"subject,omitempty"`
	QuestionPaperURL string     `json:"question_paper_url,omitempty"`
	AnswerKeyURL     string     `json:"answer_key_url,omitempty"`
	SolutionURL      string     `json:"solution_url,omitempty"`
	UploadedBy       int        `json:"uploaded_by"`
	ViewsCount       int        `json:"views_count"`
	DownloadCount    int        `json:"download_count"`
	IsApproved       bool       `json:"is_approved"`
	CreatedAt        *time.Time `json:"created_at,omitempty"`
}

type Doubt struct {
	ID               int        `json:"id"`
	Question         string     `json:"question"`
	DetectedLanguage string     `json:"detected_language,omitempty"`
	AIResponse       string     `json:"ai_response,omitempty"`
	IsResolved       bool       `json:"is_resolved"`
	CreatedAt        *time.Time `json:"created_at,omitempty"`
}

type CareerQuery struct {
	ID         int        `json:"id"`
	Query      string     `json:"query"`
	AIResponse string     `json:"ai_response,omitempty"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
}

type ImportantQuestions struct {
	Questions  string `json:"questions"`
	Subject    string `json:"subject"`
	ClassLevel string `json:"class_level"`
	Chapter    string `json:"chapter"`
}

type PYQPatterns struct {
	Patterns string `json:"patterns"`
	ExamType string `json:"exam_type"`
	Subject  string `json:"subject,omitempty"`
}

type StepByStepSolution struct {
	Solution string `json:"solution"`
	Problem  string `json:"problem"`
}

type Performance struct {
	TotalDoubts     int            `json:"total_doubts"`
	Subjects        map[string]int `json:"subjects"`
	Chapters        map[string]int `json:"chapters"`
	WeakTopics      []string       `json:"weak_topics"`
	Recommendations []string       `json:"recommendations"`
	ClassLevels     map[string]int `json:"class_levels"`
}

type WeakTopicsSummary struct {
	Summary  string `json:"summary"`
	Language string `json:"language"`
}

type RevisionPack struct {
	RevisionNotes      string `json:"revision_notes"`
	Formulas           string `json:"formulas"`
	RapidFireQuestions string `json:"rapid_fire_questions"`
	CommonMistakes     string `json:"common_mistakes"`
	QuickTips          string `json:"quick_tips"`
	FullResponse       string `json:"full_response"`
	Subject            string `json:"subject"`
	ClassLevel         string `json:"class_level"`
	Urgency            string `json:"urgency"`
	Language           string `json:"language"`
}

type SearchResult struct {
	Query         string           `json:"query"`
	Keywords      []string         `json:"keywords"`
	Notes         []map[string]any `json:"notes"`
	PYQs          []map[string]any `json:"pyqs"`
	Chapters      []map[string]any `json:"chapters"`
	AIExplanation string           `json:"ai_explanation"`
	TotalResults  int              `json:"total_results"`
	Language      string           `json:"language"`
}

type Exam struct {
	ID              int        `json:"id"`
	Title           string     `json:"title"`
	Subject         string     `json:"subject,omitempty"`
	ClassLevel      string     `json:"class_level,omitempty"`
	ExamType        string     `json:"exam_type,omitempty"`
	DurationMinutes int        `json:"duration_minutes"`
	TotalQuestions  int        `json:"total_questions"`
	Status          string     `json:"status"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	SubmittedAt     *time.Time `json:"submitted_at,omitempty"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
}

type ExamQuestion struct {
	ID             int      `json:"id"`
	QuestionNumber int      `json:"question_number"`
	QuestionText   string   `json:"question_text"`
	Options        []string `json:"options"`
	Marks          int      `json:"marks"`
	Difficulty     string   `json:"difficulty"`
}

type ExamResult struct {
	ID                  int            `json:"id"`
	ExamID              int            `json:"exam_id"`
	TotalQuestions      int            `json:"total_questions"`
	CorrectAnswers      int            `json:"correct_answers"`
	WrongAnswers        int            `json:"wrong_answers"`
	Unanswered          int            `json:"unanswered"`
	TotalMarks          int            `json:"total_marks"`
	ObtainedMarks       int            `json:"obtained_marks"`
	Percentage          int            `json:"percentage"`
	WeakTopics          map[string]any `json:"weak_topics,omitempty"`
	PerformanceAnalysis string         `json:"performance_analysis,omitempty"`
	CreatedAt           *time.Time     `json:"created_at,omitempty"`
}

type NoteDownload struct {
	FileURL string `json:"file_url"`
}

type PYQDownload struct {
	QuestionPaperURL string `json:"question_paper_url,omitempty"`
	AnswerKeyURL     string `json:"answer_key_url,omitempty"`
	SolutionURL      string `json:"solution_url,omitempty"`
}

type AIKeyStatus struct {
	HasGroq       bool   `json:"has_groq"`
	HasOpenAI     bool   `json:"has_openai"`
	GroqPreview   string `json:"groq_preview,omitempty"`
	OpenAIPreview string `json:"openai_preview,omitempty"`
}

type GuidanceTypes struct {
	GuidanceTypes []map[string]any `json:"guidance_types"`
}
