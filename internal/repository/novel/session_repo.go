package novel

import (
	"context"
	"fmt"

	"conovel/internal/model/novel"
	"conovel/internal/pkg/id"
)

// SessionRepository 会话仓库接口（供 service 层依赖）
type SessionRepository interface {
	Create(ctx context.Context, s *novel.Session) error
	FindByID(ctx context.Context, id string) (*novel.Session, error)
	FindActiveByNovelID(ctx context.Context, novelID string) (*novel.Session, error)
	Update(ctx context.Context, s *novel.Session) error
	Deactivate(ctx context.Context, id string) (bool, error)
	ListAll(ctx context.Context) ([]*novel.Session, error)
}

// SessionRepo 创作会话仓库
type SessionRepo struct {
	store *Store
}

// NewSessionRepo 创建会话仓库
func NewSessionRepo(store *Store) *SessionRepo {
	return store.Sessions()
}

// Create 创建会话，novel_id 必须指向已存在的项目
func (r *SessionRepo) Create(ctx context.Context, s *novel.Session) error {
	if _, err := r.store.Projects().FindByID(ctx, s.NovelID); err != nil {
		return err
	}
	now := r.store.now()
	s.ID = id.New()
	s.CreatedAt = now
	s.UpdatedAt = now
	s.LastActivity = now
	if s.SessionData == nil {
		s.SessionData = map[string]any{}
	}
	return r.store.sessions.mutate(ctx, func(records []*novel.Session) ([]*novel.Session, bool, error) {
		return append(records, s.Clone()), true, nil
	})
}

// FindByID 根据ID查询会话
func (r *SessionRepo) FindByID(ctx context.Context, sessionID string) (*novel.Session, error) {
	records, err := r.store.sessions.read(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range records {
		if s.ID == sessionID {
			return s, nil
		}
	}
	return nil, fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
}

// FindActiveByNovelID 查询小说的第一个活跃会话
func (r *SessionRepo) FindActiveByNovelID(ctx context.Context, novelID string) (*novel.Session, error) {
	records, err := r.store.sessions.read(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range records {
		if s.NovelID == novelID && s.IsActive {
			return s, nil
		}
	}
	return nil, fmt.Errorf("active session of novel %s: %w", novelID, ErrNotFound)
}

// Update 按 id 整体替换会话，刷新 updated_at 与 last_activity
func (r *SessionRepo) Update(ctx context.Context, s *novel.Session) error {
	return r.store.sessions.mutate(ctx, func(records []*novel.Session) ([]*novel.Session, bool, error) {
		for i, existing := range records {
			if existing.ID != s.ID {
				continue
			}
			s.CreatedAt = existing.CreatedAt
			s.Touch(r.store.now())
			records[i] = s.Clone()
			return records, true, nil
		}
		return nil, false, fmt.Errorf("session %s: %w", s.ID, ErrNotFound)
	})
}

// Deactivate 停用会话
func (r *SessionRepo) Deactivate(ctx context.Context, sessionID string) (bool, error) {
	found := false
	err := r.store.sessions.mutate(ctx, func(records []*novel.Session) ([]*novel.Session, bool, error) {
		for _, s := range records {
			if s.ID == sessionID {
				s.IsActive = false
				s.Touch(r.store.now())
				found = true
				return records, true, nil
			}
		}
		return nil, false, nil
	})
	return found, err
}

// ListAll 按文件顺序返回全部会话
func (r *SessionRepo) ListAll(ctx context.Context) ([]*novel.Session, error) {
	return r.store.sessions.read(ctx)
}
