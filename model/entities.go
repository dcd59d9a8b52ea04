// Copyright 2025-26 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package model contains the shared model for o5m decoded entities.
package model

//go:generate stringer -type=EntityType

import (
	"time"
)

// ID is the primary key of an entity.
type ID int64

// UID is the primary key for a user.
type UID int32

// Tag is a single key/value annotation on an entity.
type Tag struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Tags is an ordered list of tags.  Order is the encounter order in the
// source stream and duplicate keys are preserved as given.
type Tags []Tag

// Get returns the value of the first tag with the given key.
func (t Tags) Get(key string) (string, bool) {
	for _, tag := range t {
		if tag.Key == key {
			return tag.Value, true
		}
	}

	return "", false
}

// Info represents metadata common to Node, Way, and Relation entities.
// Entities carry a nil Info when the source stream omits the metadata
// block, a common size-saving mode for anonymous or historical data.
type Info struct {
	Version   int32
	Timestamp time.Time
	Changeset int64
	UID       UID
	User      string
}

// Entity is one decoded o5m dataset.
type Entity interface {
	isEntity() // prevents extensions
}

// Element is an entity with an identity: a Node, Way, or Relation.
type Element interface {
	Entity

	GetID() ID

	GetTags() Tags

	GetInfo() *Info
}

// Node represents a specific point on the earth's surface defined by its
// latitude and longitude. Each node comprises at least an id number and a
// pair of coordinates.
type Node struct {
	ID   ID
	Tags Tags
	Info *Info
	Lat  Degrees
	Lon  Degrees
}

var _ Element = Node{}

func (n Node) isEntity() {}

func (n Node) GetID() ID {
	return n.ID
}

func (n Node) GetTags() Tags {
	return n.Tags
}

func (n Node) GetInfo() *Info {
	return n.Info
}

// Way is an ordered list of between 2 and 2,000 nodes that define a polyline.
type Way struct {
	ID      ID
	Tags    Tags
	Info    *Info
	NodeIDs []ID
}

var _ Element = Way{}

func (w Way) isEntity() {}

func (w Way) GetID() ID {
	return w.ID
}

func (w Way) GetTags() Tags {
	return w.Tags
}

func (w Way) GetInfo() *Info {
	return w.Info
}

// EntityType is an enumeration of o5m entity types.
type EntityType int32

const (
	// NODE denotes that the member is a node.
	NODE EntityType = iota

	// WAY denotes that the member is a way.
	WAY

	// RELATION denotes that the member is a relation.
	RELATION
)

// Member represents an entity referenced from a relation.
type Member struct {
	ID   ID
	Type EntityType
	Role string
}

// Relation is a multipurpose data structure that documents a relationship
// between two or more data entities (nodes, ways, and/or other relations).
type Relation struct {
	ID      ID
	Tags    Tags
	Info    *Info
	Members []Member
}

var _ Element = Relation{}

func (r Relation) isEntity() {}

func (r Relation) GetID() ID {
	return r.ID
}

func (r Relation) GetTags() Tags {
	return r.Tags
}

func (r Relation) GetInfo() *Info {
	return r.Info
}
