package handler

type ContextKey string

var (
	RoleCtxKey     ContextKey = "role"
	SubCtxKey      ContextKey = "sub"
	CurrentUserCtx ContextKey = "currentUser"
	UserInfoCtx    ContextKey = "userInfo"
)
