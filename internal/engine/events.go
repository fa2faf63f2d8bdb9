/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package engine

// Event is the name of an engine notification. Events are delivered
// synchronously, in operation order, on the caller's stack.
type Event string

const (
	EventMeasurementStarted   Event = "measurementStarted"
	EventMeasurementUpdated   Event = "measurementUpdated"
	EventMeasurementCompleted Event = "measurementCompleted"
	EventMeasurementCancelled Event = "measurementCancelled"
	EventShapeCreated         Event = "shapeCreated"
	EventActiveGridChanged    Event = "activeGridChanged"
	EventGridUpdated          Event = "gridUpdated"
	EventTemplateCreated      Event = "templateCreated"
	EventSettingsUpdated      Event = "settingsUpdated"
	EventDataImported         Event = "dataImported"
)

// EventCallback receives an event name and an immutable payload snapshot.
type EventCallback func(event Event, payload any)

type subscriber struct {
	id string
	fn EventCallback
}

// bus is an ordered observer list keyed by subscriber identity. Registration
// order is delivery order; re-subscribing under the same id replaces the
// callback but keeps the position.
type bus struct {
	subs []subscriber
}

func (b *bus) subscribe(id string, fn EventCallback) {
	for i := range b.subs {
		if b.subs[i].id == id {
			b.subs[i].fn = fn
			return
		}
	}
	b.subs = append(b.subs, subscriber{id: id, fn: fn})
}

func (b *bus) unsubscribe(id string) bool {
	for i := range b.subs {
		if b.subs[i].id == id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return true
		}
	}
	return false
}

func (b *bus) publish(ev Event, payload any) {
	for _, s := range b.subs {
		s.fn(ev, payload)
	}
}

// Subscribe registers a callback under subscriberID. At most one callback is
// kept per id; a second call replaces the first.
func (e *Engine) Subscribe(subscriberID string, fn EventCallback) {
	if fn == nil {
		return
	}
	e.bus.subscribe(subscriberID, fn)
}

// Unsubscribe removes the callback registered under subscriberID, reporting
// whether one was present.
func (e *Engine) Unsubscribe(subscriberID string) bool {
	return e.bus.unsubscribe(subscriberID)
}
