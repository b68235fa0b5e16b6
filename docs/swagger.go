// Package docs Place Resolver API.
//
// Сервис поиска и ранжирования мест для приложения такси/доставки.
// Объединяет локальное хранилище мест с внешними геокодерами (Google, Nominatim),
// ранжирует результаты и хранит точки посадки у мест.
//
// Основные возможности:
// - Поиск мест по тексту с персональным ранжированием
// - Обратное геокодирование с кешем и точкой-заглушкой
// - Привязка координаты к ближайшей проезжей дороге
// - Точки посадки с подтверждением пользователями
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
