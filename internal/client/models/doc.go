// Package models defines the client-side entities exchanged with the
// taskboard REST API: users, projects, tasks, their request DTOs and the
// pagination envelope used by task listings.
//
// All entities carry the client identifier field "id"; the server-native
// "_id"/"__v" fields never reach these types because the gateway normalizes
// every response first.
package models
