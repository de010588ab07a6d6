// Package lock は在庫ごとの排他（read-modify-write を直列化する）を提供する。
package lock

import (
	"context"
	"strconv"
)

// 取得したロックを解放する。複数回呼んでも安全。
type Unlock func()

type Locker interface {
	// keyのロックを取るまで待つ。ctxが終わったらerrorを返す。
	Lock(ctx context.Context, key string) (Unlock, error)
}

func InventoryKey(inventoryID int64) string {
	return "inventory:" + strconv.FormatInt(inventoryID, 10)
}
