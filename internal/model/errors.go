// Package model はドメインモデルを定義する。
package model

import (
	"fmt"
	"net/http"
)

// APIError はHTTPステータスコードと利用者向けメッセージを持つAPIエラーを表す。
// サービス層の各呼び出し箇所が、失敗した操作に対応するAPIErrorを返すことで
// エラーマッピングを一箇所に集約する。内部エラーの詳細はログのみに記録し、
// レスポンスには含めない。
type APIError struct {
	Status  int    // HTTPステータスコード
	Message string // 利用者向けメッセージ
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%d] %s", e.Status, e.Message)
}

// NewBadRequest は400 Bad Requestのエラーを生成する。
func NewBadRequest(message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Message: message}
}

// NewUnauthorized は401 Unauthorizedのエラーを生成する。
func NewUnauthorized(message string) *APIError {
	return &APIError{Status: http.StatusUnauthorized, Message: message}
}

// NewNotFound は404 Not Foundのエラーを生成する。
func NewNotFound(message string) *APIError {
	return &APIError{Status: http.StatusNotFound, Message: message}
}

// NewBadData は422 Unprocessable Entityのエラーを生成する。
// ストアへの書き込みが拒否された場合に使用する。
func NewBadData(message string) *APIError {
	return &APIError{Status: http.StatusUnprocessableEntity, Message: message}
}

// NewBadGateway は502 Bad Gatewayのエラーを生成する。
// ストアへの接続・読み取り障害の場合に使用する。
func NewBadGateway(message string) *APIError {
	return &APIError{Status: http.StatusBadGateway, Message: message}
}
