package dto

// GenerateQuizRequest is the body of POST /api/quizzes
// @Description Request body for generating a quiz from an article URL
type GenerateQuizRequest struct {
	URL          string `json:"url"`
	NumQuestions int    `json:"num_questions"`
}

// QuestionResponse represents a single question in the API response
type QuestionResponse struct {
	ID            int64    `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Difficulty    string   `json:"difficulty"`
	Explanation   string   `json:"explanation"`
	RelatedTopics []string `json:"related_topics"`
}

// QuizResponse represents a quiz with its questions in the API response
// @Description Quiz with its ordered question list
type QuizResponse struct {
	QuizID    int64              `json:"quiz_id"`
	QuizTitle string             `json:"quiz_title"`
	Questions []QuestionResponse `json:"questions"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}
