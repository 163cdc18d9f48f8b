package repository

import "errors"

var (
	// 対象が存在しない
	ErrNotFound = errors.New("not found")
	// 参照されている行の削除など、制約で書き込めない
	ErrConflict = errors.New("conflict")
	// 同じUnitOfWorkでAtomicを入れ子で呼んだ（プログラムのバグ）
	ErrNestedUnitOfWork = errors.New("unit of work: nested Atomic call")
)
