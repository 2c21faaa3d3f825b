package youtube

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	ytapi "google.golang.org/api/youtube/v3"
)

const WatchURLPrefix = "https://www.youtube.com/watch?v="

// Document is the persisted result of a run.
type Document struct {
	Count int      `json:"count"`
	Links []string `json:"links"`
}

// Materialize maps items to watch URLs, keeping their order. A single item
// without a video id fails the whole document.
func Materialize(items []*ytapi.PlaylistItem) (*Document, error) {
	links := make([]string, 0, len(items))
	for i, item := range items {
		videoID, ok := videoIDOf(item)
		if !ok {
			itemID := ""
			if item != nil {
				itemID = item.Id
			}
			return nil, &MalformedItemError{Index: i, ItemID: itemID}
		}
		links = append(links, WatchURLPrefix+videoID)
	}

	return &Document{Count: len(links), Links: links}, nil
}

func videoIDOf(item *ytapi.PlaylistItem) (string, bool) {
	if item == nil || item.Snippet == nil || item.Snippet.ResourceId == nil {
		return "", false
	}
	if item.Snippet.ResourceId.VideoId == "" {
		return "", false
	}
	return item.Snippet.ResourceId.VideoId, true
}

// Encode renders the document with four-space indentation.
func (d *Document) Encode() ([]byte, error) {
	out := *d
	if out.Links == nil {
		out.Links = []string{}
	}
	return json.MarshalIndent(out, "", "    ")
}

// DocumentPath is <dir>/<handle>.json, the handle taken verbatim.
func DocumentPath(dir, handle string) string {
	return filepath.Join(dir, handle+".json")
}

// SaveDocument writes the document, replacing any earlier file for the handle.
func SaveDocument(dir, handle string, doc *Document) (string, error) {
	data, err := doc.Encode()
	if err != nil {
		return "", fmt.Errorf("encoding document: %w", err)
	}

	path := DocumentPath(dir, handle)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write to file: %w", err)
	}
	return path, nil
}
