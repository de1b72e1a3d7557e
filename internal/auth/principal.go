package auth

import (
	"context"

	"cmsarticle/internal/logger"
	"cmsarticle/internal/reqctx"

	"go.uber.org/zap"
)

const (
	RoleAdmin     = "admin"
	RoleSystem    = "system"
	RoleAnonymous = "anonymous"
)

// Principal - от чьего имени выполняется операция.
type Principal struct {
	ID     int64
	Login  string
	Role   string
	System bool
	grants map[string]struct{}
}

func NewPrincipal(id int64, login, role string, grants []string) *Principal {
	p := &Principal{ID: id, Login: login, Role: role, grants: make(map[string]struct{}, len(grants))}
	for _, g := range grants {
		p.grants[g] = struct{}{}
	}
	return p
}

func Anonymous() *Principal {
	return &Principal{Login: RoleAnonymous, Role: RoleAnonymous}
}

// System - служебная учётная запись, обходит проверки прав.
func System() *Principal {
	return &Principal{Login: RoleSystem, Role: RoleSystem, System: true}
}

func (p *Principal) IsAnonymous() bool { return p == nil || (p.ID == 0 && !p.System) }

func (p *Principal) IsAdmin() bool { return p != nil && p.Role == RoleAdmin }

func (p *Principal) HasPermission(name string) bool {
	if p == nil {
		return false
	}
	if p.System || p.IsAdmin() {
		return true
	}
	_, ok := p.grants[name]
	return ok
}

type ctxKey struct{}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	ctx = context.WithValue(ctx, ctxKey{}, p)
	if p != nil && p.ID != 0 {
		ctx = reqctx.WithUserID(ctx, p.ID)
	}
	return ctx
}

// FromContext никогда не возвращает nil: без пользователя - аноним.
func FromContext(ctx context.Context) *Principal {
	if p, ok := ctx.Value(ctxKey{}).(*Principal); ok && p != nil {
		return p
	}
	return Anonymous()
}

// RunAsSystem выполняет fn от имени системы. Контекст вызывающего не меняется,
// поэтому после выхода из fn (в том числе по панике) прежний пользователь остаётся в силе.
func RunAsSystem(ctx context.Context, fn func(ctx context.Context) error) error {
	prev := FromContext(ctx)
	log := logger.WithCtx(ctx)
	log.Debug("Переключение на системного пользователя", zap.String("prev_login", prev.Login))
	defer log.Debug("Восстановлен пользователь", zap.String("login", prev.Login))

	return fn(context.WithValue(ctx, ctxKey{}, System()))
}
