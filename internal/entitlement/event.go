// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package entitlement

import (
	"errors"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/tidwall/gjson"
)

// ErrMalformedEvent is returned when an event does not carry the product view
// summary the propagator needs.
var ErrMalformedEvent = errors.New("malformed product event")

// productViewSummaryPath locates the product view summary inside the event
// detail of a Service Catalog CopyProduct/CreateProduct CloudTrail event.
const productViewSummaryPath = "responseElements.productViewDetail.productViewSummary"

// Event is a product-created notification. Only the product view summary is
// ever read from it.
type Event struct {
	Source     string
	DetailType string
	detail     gjson.Result
}

// ParseEvent parses a raw EventBridge envelope as delivered to a rule target
// or captured to a file. The envelope must be a JSON object with a "detail"
// member.
func ParseEvent(raw []byte) (Event, error) {
	if !gjson.ValidBytes(raw) {
		return Event{}, fmt.Errorf("%w: not valid JSON", ErrMalformedEvent)
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return Event{}, fmt.Errorf("%w: not a JSON object", ErrMalformedEvent)
	}

	return Event{
		Source:     doc.Get("source").String(),
		DetailType: doc.Get("detail-type").String(),
		detail:     doc.Get("detail"),
	}, nil
}

// FromCloudWatchEvent adapts the Lambda runtime's decoded event.
func FromCloudWatchEvent(ev events.CloudWatchEvent) Event {
	return Event{
		Source:     ev.Source,
		DetailType: ev.DetailType,
		detail:     gjson.ParseBytes(ev.Detail),
	}
}

// EventName returns the CloudTrail event name (e.g. "CopyProduct"), if any.
func (e Event) EventName() string {
	return e.detail.Get("eventName").String()
}

// ProductID returns productViewSummary.productId.
func (e Event) ProductID() (string, error) {
	return e.summaryField("productId")
}

// ProductName returns productViewSummary.name.
func (e Event) ProductName() (string, error) {
	return e.summaryField("name")
}

func (e Event) summaryField(field string) (string, error) {
	path := productViewSummaryPath + "." + field
	v := e.detail.Get(path)
	if !v.Exists() || v.Type != gjson.String {
		return "", fmt.Errorf("%w: detail.%s missing", ErrMalformedEvent, path)
	}
	return v.String(), nil
}
