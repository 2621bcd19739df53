package slotblock

import "errors"

var (
	// ErrBlockNotFound возвращается, когда блокировка слота не найдена
	ErrBlockNotFound = errors.New("slotblock.repository: block not found")

	// ErrBlockAlreadyExists возвращается при попытке повторно заблокировать слот
	ErrBlockAlreadyExists = errors.New("slotblock.repository: block already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slotblock.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slotblock.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slotblock.repository: failed to scan row")
)
