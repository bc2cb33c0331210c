package novel

import "time"

// Session 创作会话
type Session struct {
	ID      string `json:"id"`
	NovelID string `json:"novel_id"`

	CurrentStep CreationStep   `json:"current_step"`
	SessionData map[string]any `json:"session_data"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	IsActive     bool      `json:"is_active"`
	LastActivity time.Time `json:"last_activity"`
}

// NewSession 构造处于基础设置步骤的活跃会话
func NewSession(novelID string) *Session {
	return &Session{
		NovelID:     novelID,
		CurrentStep: StepBasicSetup,
		SessionData: map[string]any{},
		IsActive:    true,
	}
}

// NextStep 前进一步，已在最后一步时不变
func (s *Session) NextStep(now time.Time) {
	if s.CurrentStep < LastStep {
		s.CurrentStep++
	}
	s.Touch(now)
}

// PrevStep 后退一步，已在第一步时不变
func (s *Session) PrevStep(now time.Time) {
	if s.CurrentStep > FirstStep {
		s.CurrentStep--
	}
	s.Touch(now)
}

// SetData 合并会话数据
func (s *Session) SetData(data map[string]any, now time.Time) {
	if s.SessionData == nil {
		s.SessionData = map[string]any{}
	}
	for k, v := range data {
		s.SessionData[k] = v
	}
	s.Touch(now)
}

// Touch 刷新活动时间
func (s *Session) Touch(now time.Time) {
	s.LastActivity = now
	s.UpdatedAt = now
}

// Clone 深拷贝（session_data 只拷贝一层）
func (s *Session) Clone() *Session {
	cp := *s
	cp.SessionData = cloneMap(s.SessionData)
	return &cp
}
