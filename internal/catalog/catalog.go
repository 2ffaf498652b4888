// Package catalog lists the pre-generated courses a journey can be started
// from without typing interests.
package catalog

import (
	"fmt"
	"slices"
)

// Subject is one course within a stream.
type Subject struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Stream is a group of related subjects.
type Stream struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Subjects    []Subject `json:"subjects"`
}

// index holds the streams with lookup maps.
type index struct {
	streams  []Stream
	byStream map[string]int
	bySubj   map[string]map[string]int
}

// c is the package-level catalog, built by init() in seed.go.
var c *index

func buildIndex(streams []Stream) *index {
	idx := &index{
		streams:  streams,
		byStream: make(map[string]int, len(streams)),
		bySubj:   make(map[string]map[string]int, len(streams)),
	}
	for i, st := range streams {
		idx.byStream[st.ID] = i
		subj := make(map[string]int, len(st.Subjects))
		for j, s := range st.Subjects {
			subj[s.ID] = j
		}
		idx.bySubj[st.ID] = subj
	}
	return idx
}

// Streams returns all streams in display order.
func Streams() []Stream {
	out := make([]Stream, len(c.streams))
	for i, st := range c.streams {
		out[i] = st
		out[i].Subjects = slices.Clone(st.Subjects)
	}
	return out
}

// GetStream returns a stream by ID.
func GetStream(id string) (Stream, error) {
	i, ok := c.byStream[id]
	if !ok {
		return Stream{}, fmt.Errorf("stream not found: %q", id)
	}
	st := c.streams[i]
	st.Subjects = slices.Clone(st.Subjects)
	return st, nil
}

// GetSubject returns a subject by stream and subject ID.
func GetSubject(streamID, subjectID string) (Subject, error) {
	i, ok := c.byStream[streamID]
	if !ok {
		return Subject{}, fmt.Errorf("stream not found: %q", streamID)
	}
	j, ok := c.bySubj[streamID][subjectID]
	if !ok {
		return Subject{}, fmt.Errorf("subject %q not found in stream %q", subjectID, streamID)
	}
	return c.streams[i].Subjects[j], nil
}

// Interests returns the interest list a journey on the subject starts with.
func (s Subject) Interests() []string {
	return []string{s.Name}
}
