package utils

import (
	"context"

	"github.com/AbuAzad2025/garage-manager-project-sub001/appctx"
)

var (
	ContextKeyUserId            = appctx.ContextKeyUserId
	ContextKeyUserName          = appctx.ContextKeyUserName
	ContextKeyCorrelationId     = appctx.ContextKeyCorrelationId
	ContextKeySkipBalanceNotify = appctx.ContextKeySkipBalanceNotify
)

func GetUserIdFromContext(ctx context.Context) (int, bool) {
	return appctx.GetInt(ctx, ContextKeyUserId)
}

func GetUserNameFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, ContextKeyUserName)
}

func GetCorrelationIdFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, ContextKeyCorrelationId)
}

func SetUserIdInContext(ctx context.Context, userId int) context.Context {
	return appctx.Set(ctx, ContextKeyUserId, userId)
}

func SetUserNameInContext(ctx context.Context, userName string) context.Context {
	return appctx.Set(ctx, ContextKeyUserName, userName)
}

func SetCorrelationIdInContext(ctx context.Context, correlationId string) context.Context {
	return appctx.Set(ctx, ContextKeyCorrelationId, correlationId)
}

func GetSkipBalanceNotifyFromContext(ctx context.Context) bool {
	v, _ := appctx.GetBool(ctx, ContextKeySkipBalanceNotify)
	return v
}

func SetSkipBalanceNotifyInContext(ctx context.Context, skip bool) context.Context {
	return appctx.Set(ctx, ContextKeySkipBalanceNotify, skip)
}
