// Package ticktick implements a client for the TickTick Open API
// (https://developer.ticktick.com/docs#/openapi).
//
// The API's surface is narrow: project listing, per-project task dumps and
// task/project CRUD. Everything else this package exposes (cross-project
// task aggregation, due-today and overdue views, tag and priority filters,
// checklist subtasks) is composed client-side on top of those primitives.
package ticktick
