// Package handlers, HTTP request/response işlemlerini yönetir.
//
// Handler "thin" dir:
// 1. Request'i parse et (JSON → struct, path parametreleri)
// 2. Service katmanını çağır
// 3. Sonucu HTTP response olarak döndür
//
// Handler ASLA iş mantığı içermez, ASLA doğrudan DB'ye erişmez.
package handlers

// contextKey, context.Value çakışmalarını önlemek için özel tip.
type contextKey string

// UserContextKey, auth middleware'ın doğrulanmış kullanıcıyı request
// context'ine koyduğu anahtar.
const UserContextKey contextKey = "user"
