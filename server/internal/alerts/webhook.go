package alerts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

// fact is one labelled line of motor context shown alongside an alert.
type fact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// notice is the channel-neutral rendering of one alert transition. Each
// webhook type turns it into its own payload shape.
type notice struct {
	alert    *Alert
	event    string // "alert.firing" | "alert.resolved"
	headline string
	facts    []fact
}

func newNotice(a *Alert) notice {
	subject := "Parameter"
	if a.Kind == KindRule {
		subject = "Rule"
	}
	facts := []fact{
		{subject, a.Name},
		{"Value", strconv.FormatFloat(a.Value, 'f', 2, 64)},
	}
	if a.Kind == KindLimit || a.Threshold != 0 {
		facts = append(facts, fact{"Threshold", strconv.FormatFloat(a.Threshold, 'f', 2, 64)})
	}
	facts = append(facts,
		fact{"Tick", strconv.FormatUint(a.Seq, 10)},
		fact{"Fired", a.FiredAt.UTC().Format(time.RFC3339)},
	)
	if a.ResolvedAt != nil {
		facts = append(facts, fact{"Resolved", a.ResolvedAt.UTC().Format(time.RFC3339)})
	}

	return notice{
		alert:    a,
		event:    "alert." + a.State,
		headline: fmt.Sprintf("[%s] Motor %s %s", severityTag(a.Severity), a.Name, a.State),
		facts:    facts,
	}
}

// payloaders maps a webhook type to the body it expects.
var payloaders = map[string]func(notice) interface{}{
	"slack": slackPayload,
	"teams": teamsPayload,
	"http":  httpPayload,
}

// deliver posts n to every configured target. Failures are logged and
// never reach the tick that raised the alert.
func (e *Engine) deliver(a *Alert) {
	n := newNotice(a)
	for _, wh := range e.webhooks {
		url := wh.URL()
		if url == "" {
			continue
		}
		build, ok := payloaders[wh.Type]
		if !ok {
			slog.Warn("alerts: unknown webhook type, skipping", "type", wh.Type)
			continue
		}

		if err := e.post(url, n.event, build(n)); err != nil {
			slog.Error("alerts: webhook delivery failed",
				"type", wh.Type,
				"key", a.Key,
				"seq", a.Seq,
				"err", err,
			)
			continue
		}
		slog.Debug("alerts: webhook delivered", "type", wh.Type, "key", a.Key, "event", n.event)
	}
}

// slackPayload renders the headline as text and the motor context as an
// attachment with short fields.
func slackPayload(n notice) interface{} {
	fields := make([]map[string]interface{}, 0, len(n.facts))
	for _, f := range n.facts {
		fields = append(fields, map[string]interface{}{"title": f.Name, "value": f.Value, "short": true})
	}
	return map[string]interface{}{
		"text": n.headline + "\n" + n.alert.Message,
		"attachments": []map[string]interface{}{{
			"color":    "#" + severityColor(n.alert.Severity, n.alert.State),
			"fallback": n.alert.Message,
			"fields":   fields,
			"ts":       n.alert.FiredAt.Unix(),
		}},
	}
}

// teamsPayload renders a legacy connector MessageCard with a facts section.
func teamsPayload(n notice) interface{} {
	return map[string]interface{}{
		"@type":      "MessageCard",
		"@context":   "http://schema.org/extensions",
		"themeColor": severityColor(n.alert.Severity, n.alert.State),
		"summary":    n.headline,
		"title":      n.headline,
		"sections": []map[string]interface{}{{
			"activityTitle": n.alert.Message,
			"facts":         n.facts,
		}},
	}
}

// httpPayload is the generic envelope: the event name, the tick sequence
// and the full alert record.
func httpPayload(n notice) interface{} {
	return struct {
		Event string `json:"event"`
		Seq   uint64 `json:"seq"`
		Alert *Alert `json:"alert"`
	}{n.event, n.alert.Seq, n.alert}
}

// post sends payload as JSON. Non-2xx responses are errors carrying the
// first bytes of the receiver's reply.
func (e *Engine) post(url, event string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "motortwin-alerts")
	if event != "" {
		req.Header.Set("X-Motortwin-Event", event)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", event, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("webhook replied %s: %s", resp.Status, bytes.TrimSpace(snippet))
	}
	return nil
}

var severityTags = map[string]string{
	"critical": "CRITICAL",
	"warning":  "WARNING",
}

func severityTag(s string) string {
	if tag, ok := severityTags[s]; ok {
		return tag
	}
	return "INFO"
}

// severityColor matches the dashboard status palette; resolved alerts are green.
func severityColor(sev, state string) string {
	if state == StateResolved {
		return "22C55E"
	}
	switch sev {
	case "critical":
		return "EF4444"
	case "warning":
		return "F59E0B"
	default:
		return "3B82F6"
	}
}
