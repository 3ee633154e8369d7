package model

import (
	"encoding/json"
	"fmt"
	"time"
)

const MetaKey = "_meta"

// Article is one scraped feed entry. Articles live only for the duration of
// a batch run; the text is carried into the digest as chat grounding context.
type Article struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
	Text        string    `json:"text"`
}

type TopicDigest struct {
	Topic            string    `json:"-"`
	ExecutiveSummary string    `json:"executive_summary"`
	Implications     []string  `json:"implications"`
	BeginnerSummary  string    `json:"beginner_summary"`
	Sources          []Article `json:"sources"`
}

// DailyDigest is the single document a batch run produces. Each run fully
// replaces the previous document; there is no history.
type DailyDigest struct {
	GeneratedAt time.Time
	Topics      map[string]TopicDigest
}

type docMeta struct {
	GeneratedAt string `json:"generated_at"`
}

// MarshalJSON renders the document as one flat JSON object: a "_meta" entry
// plus one entry per topic keyed by topic name.
func (d DailyDigest) MarshalJSON() ([]byte, error) {
	doc := make(map[string]json.RawMessage, len(d.Topics)+1)

	meta, err := json.Marshal(docMeta{GeneratedAt: d.GeneratedAt.UTC().Format(time.RFC3339)})
	if err != nil {
		return nil, err
	}
	doc[MetaKey] = meta

	for name, topic := range d.Topics {
		b, err := json.Marshal(topic)
		if err != nil {
			return nil, fmt.Errorf("marshal topic %q: %w", name, err)
		}
		doc[name] = b
	}

	return json.Marshal(doc)
}

func (d *DailyDigest) UnmarshalJSON(data []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	d.Topics = make(map[string]TopicDigest, len(doc))

	sawMeta := false
	for name, raw := range doc {
		if name == MetaKey {
			sawMeta = true
			var meta docMeta
			if err := json.Unmarshal(raw, &meta); err != nil {
				return fmt.Errorf("unmarshal %s: %w", MetaKey, err)
			}
			ts, err := time.Parse(time.RFC3339, meta.GeneratedAt)
			if err != nil {
				return fmt.Errorf("parse generated_at: %w", err)
			}
			d.GeneratedAt = ts
			continue
		}

		var topic TopicDigest
		if err := json.Unmarshal(raw, &topic); err != nil {
			return fmt.Errorf("unmarshal topic %q: %w", name, err)
		}
		topic.Topic = name
		d.Topics[name] = topic
	}

	if !sawMeta {
		return fmt.Errorf("malformed digest document: missing %s", MetaKey)
	}

	return nil
}
