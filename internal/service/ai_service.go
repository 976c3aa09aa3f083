package service

import (
	"bytes"
	"campus_lms_backend/internal/config"
	"campus_lms_backend/internal/model"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// AIService 调用 OpenAI 兼容接口生成测验题目草稿。
// 生成的题目形状与测验引擎消费的完全一致，质量校验在 QuizService 里做。
type AIService struct {
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

const questionSchemaPrompt = `你是一名大学课程的出题助教。请严格输出一个 JSON 数组，不要带任何其它文字或 Markdown 代码块。
数组元素结构:
{"type":"MULTIPLE_CHOICE|TRUE_FALSE|SHORT_ANSWER","text":"题干","explanation":"解析","points":分值(正整数),"difficulty":"easy|medium|hard","options":[{"text":"选项内容","isCorrect":true或false}]}
约束: MULTIPLE_CHOICE 至少 2 个选项且恰有 1 个 isCorrect=true；TRUE_FALSE 恰好 2 个选项且恰有 1 个正确；SHORT_ANSWER 的 options 必须为空数组。`

// GenerateQuizQuestions 请求生成 count 道指定题型/难度的题目
func (s *AIService) GenerateQuizQuestions(topic string, count int, qType model.QuestionType, difficulty string) ([]QuestionReq, error) {
	userPrompt := fmt.Sprintf("主题: %s\n题型: %s\n难度: %s\n数量: %d", topic, qType, difficulty, count)

	reqBody := map[string]interface{}{
		"model": s.config.Model,
		"messages": []AIChatMessage{
			{Role: "system", Content: questionSchemaPrompt},
			{Role: "user", Content: userPrompt},
		},
	}

	jsonData, _ := json.Marshal(reqBody)

	req, err := http.NewRequest("POST", s.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var completion ChatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, err
	}
	if completion.Error != nil {
		return nil, fmt.Errorf("AI API error: %s", completion.Error.Message)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("AI API returned no choices")
	}

	content := stripCodeFence(completion.Choices[0].Message.Content)

	var drafts []QuestionReq
	if err := json.Unmarshal([]byte(content), &drafts); err != nil {
		return nil, fmt.Errorf("failed to parse generated questions: %v", err)
	}
	return drafts, nil
}

// stripCodeFence 模型偶尔无视指令包一层 ```json，这里兜底剥掉
func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}
	return strings.TrimSpace(content)
}
