// Package models defines the household entities read from the remote store
// and the enriched views the group data store builds from them.
//
// Plain entities (Group, User, Image, Task, Assignment) mirror table rows.
// ImageWithCreator and TaskWithAssignees are computed client-side on every
// fetch and never written back. GroupData is the whole snapshot; its JSON
// form is what the local cache stores.
package models
