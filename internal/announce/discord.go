package announce

import "context"

type DiscordSender struct {
	client *HTTPClient
}

func NewDiscordSender(client *HTTPClient) *DiscordSender {
	return &DiscordSender{client: client}
}

func (s *DiscordSender) Send(ctx context.Context, endpoint string, msg Message) error {
	type embedField struct {
		Name   string `json:"name"`
		Value  string `json:"value"`
		Inline bool   `json:"inline"`
	}
	fields := make([]embedField, 0, len(msg.Fields))
	for _, f := range msg.Fields {
		fields = append(fields, embedField{Name: f.Name, Value: f.Value, Inline: f.Inline})
	}
	embed := map[string]any{
		"title":       msg.Title,
		"description": msg.Description,
		"fields":      fields,
		"color":       msg.Color,
	}
	if msg.Timestamp != "" {
		embed["timestamp"] = msg.Timestamp
	}
	if msg.Footer != "" {
		embed["footer"] = map[string]string{"text": msg.Footer}
	}
	return s.client.PostJSON(ctx, endpoint, map[string]any{
		"embeds": []map[string]any{embed},
	})
}
