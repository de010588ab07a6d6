package usecase

import (
	"strconv"
	"strings"
)

// カテゴリ削除の対象。IDか名前のどちらか。
type Identifier struct {
	id   int64
	name string
	byID bool
}

func ByID(id int64) Identifier {
	return Identifier{id: id, byID: true}
}

func ByName(name string) Identifier {
	return Identifier{name: name}
}

func (i Identifier) ID() (int64, bool) {
	return i.id, i.byID
}

func (i Identifier) Name() (string, bool) {
	return i.name, !i.byID
}

func (i Identifier) String() string {
	if i.byID {
		return "id:" + strconv.FormatInt(i.id, 10)
	}
	return "name:" + i.name
}

// 整数として読めればID（>0のみ）、それ以外は名前として扱う。
func ParseIdentifier(raw string) (Identifier, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Identifier{}, NewInvalidArgumentError("identifier", "category identifier is required")
	}

	n, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return ByName(raw), nil
	}
	if n <= 0 {
		return Identifier{}, NewInvalidArgumentError("identifier", "invalid category id")
	}
	return ByID(n), nil
}
