package vbz_poller

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/F3NN3X/vbz-departures-service/dlog"
	"github.com/F3NN3X/vbz-departures-service/model"
	"github.com/F3NN3X/vbz-departures-service/presenter"
	vbz_client "github.com/F3NN3X/vbz-departures-service/vbz-client"
)

// AccessibilityCode is the TRIAS service attribute code marking a
// wheelchair-accessible vehicle (Niederflur).
const AccessibilityCode = "A__NF"

// DefaultInterval applies when the poller is built without an interval.
const DefaultInterval = 30 * time.Second

// VbzPoller drives the poll-fetch-parse-enrich cycle for one stop and
// hands each resulting snapshot to the subscriber. One instance runs at
// most one poll at a time.
type VbzPoller struct {
	Logger          dlog.Logger
	Client          vbz_client.VbzClientInterface
	Presenter       *presenter.Presenter
	StopPointRef    string
	NumberOfResults int
	RequestorRef    string
	Interval        time.Duration
	// Subscriber receives exactly one snapshot per tick, synchronously.
	// A panicking subscriber is logged and does not stop the poller.
	Subscriber func(model.Snapshot)

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc
	done   chan struct{}
}

// CreateStopEventRequest builds the TRIAS StopEventRequest body for one
// stop. The instant is embedded at second precision, Z-suffixed, in the
// service timestamp, the nested request timestamp and the location
// reference time. Real-time data is requested; previous and onward calls
// are suppressed. Pure formatting, no error conditions.
func CreateStopEventRequest(stopPointRef string, numberOfResults int, requestorRef string, now time.Time) string {
	requestTimestamp := now.UTC().Format(time.RFC3339)
	return `<?xml version="1.0" encoding="UTF-8"?>
<Trias version="1.1" xmlns="http://www.vdv.de/trias" xmlns:siri="http://www.siri.org.uk/siri">
    <ServiceRequest>
        <siri:RequestTimestamp>` + requestTimestamp + `</siri:RequestTimestamp>
        <siri:RequestorRef>` + requestorRef + `</siri:RequestorRef>
        <RequestPayload>
            <StopEventRequest>
                <RequestTimestamp>` + requestTimestamp + `</RequestTimestamp>
                <Location>
                    <LocationRef>
                        <StopPointRef>` + stopPointRef + `</StopPointRef>
                    </LocationRef>
                    <DepArrTime>` + requestTimestamp + `</DepArrTime>
                </Location>
                <Params>
                    <NumberOfResults>` + strconv.Itoa(numberOfResults) + `</NumberOfResults>
                    <StopEventType>departure</StopEventType>
                    <IncludePreviousCalls>false</IncludePreviousCalls>
                    <IncludeOnwardCalls>false</IncludeOnwardCalls>
                    <IncludeRealtimeData>true</IncludeRealtimeData>
                </Params>
            </StopEventRequest>
        </RequestPayload>
    </ServiceRequest>
</Trias>`
}

// tick runs one poll cycle. Every failure mode, a panic included, is
// converted into an error snapshot; nothing propagates to the run loop.
func (p *VbzPoller) tick(ctx context.Context) (snapshot model.Snapshot) {
	logger := dlog.OrNop(p.Logger)
	now := time.Now()

	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("tick panic: %v", r)
			snapshot = model.NewErrorSnapshot(now, fmt.Sprintf("Internal error: %v", r))
		}
	}()

	logger.Debugf("tick for stop %s", p.StopPointRef)

	triasRequest := CreateStopEventRequest(p.StopPointRef, p.NumberOfResults, p.RequestorRef, now)

	body, err := p.Client.Request(ctx, triasRequest)
	if err != nil {
		return p.requestErrorSnapshot(now, err)
	}

	snapshot, err = p.transform(now, body)
	if err != nil {
		logger.Errorf("cannot parse VBZ response: %s", err)
		logger.Verbosef("unparseable response body: %s", body)
		return model.NewErrorSnapshot(now, "Parse error: "+err.Error())
	}

	return snapshot
}

func (p *VbzPoller) requestErrorSnapshot(now time.Time, err error) model.Snapshot {
	logger := dlog.OrNop(p.Logger)

	var apiErr *vbz_client.APIError
	if errors.As(err, &apiErr) {
		logger.Errorf("VBZ API rejected the request: status %d", apiErr.StatusCode)
		return model.NewErrorSnapshot(now, apiErr.Error())
	}

	var transportErr *vbz_client.TransportError
	if errors.As(err, &transportErr) {
		logger.Errorf("cannot reach VBZ API: %s", transportErr.Err)
		return model.NewErrorSnapshot(now, transportErr.Error())
	}

	logger.Errorf("VBZ request failed: %s", err)
	return model.NewErrorSnapshot(now, err.Error())
}

// transform walks the unmarshalled response in document order and builds
// enriched departures. A result without a StopEvent node is skipped;
// missing optional nodes fall back to the display defaults. An unmarshal
// failure collapses the whole response to an error: partial results are
// discarded, not surfaced.
//
// TODO: decide whether a mid-document failure should surface the
// departures parsed so far instead of collapsing to an error.
func (p *VbzPoller) transform(now time.Time, body []byte) (model.Snapshot, error) {
	dlog.OrNop(p.Logger).Debugf("transform")

	trias := model.Trias{}
	if err := xml.Unmarshal(body, &trias); err != nil {
		return model.Snapshot{}, err
	}

	stationName := ""
	departures := []model.Departure{}

	for _, result := range trias.ServiceDelivery.DeliveryPayload.StopEventResponse.StopEventResults {
		stopEvent := result.StopEvent
		if stopEvent == nil {
			continue
		}

		departure := model.Departure{
			Line:        "?",
			Destination: "?",
		}

		if service := stopEvent.Service; service != nil {
			if service.PublishedLineName != nil && service.PublishedLineName.Text != "" {
				departure.Line = service.PublishedLineName.Text
			}
			if service.DestinationText != nil && service.DestinationText.Text != "" {
				departure.Destination = service.DestinationText.Text
			}
			if service.Mode != nil {
				departure.TransportMode = strings.ToLower(service.Mode.PtMode)
			}
			for _, attribute := range service.Attributes {
				if attribute.Code == AccessibilityCode {
					departure.IsAccessible = true
					break
				}
			}
		}

		if stopEvent.ThisCall != nil && stopEvent.ThisCall.CallAtStop != nil {
			call := stopEvent.ThisCall.CallAtStop

			// First non-empty station name in the response wins.
			if stationName == "" && call.StopPointName != nil {
				stationName = call.StopPointName.Text
			}

			departure.Platform = preferredQuay(call)

			if serviceDeparture := call.ServiceDeparture; serviceDeparture != nil {
				if scheduled, err := time.Parse(time.RFC3339, serviceDeparture.TimetabledTime); err == nil {
					departure.ScheduledTime = scheduled
				}
				if serviceDeparture.EstimatedTime != nil {
					if estimated, err := time.Parse(time.RFC3339, *serviceDeparture.EstimatedTime); err == nil {
						departure.EstimatedTime = &estimated
					}
				}
			}
		}

		departures = append(departures, p.Presenter.Enrich(now, departure))
	}

	return model.NewSnapshot(now, stationName, departures), nil
}

// preferredQuay returns the real-time estimated platform when present,
// the planned one otherwise.
func preferredQuay(call *model.CallAtStop) string {
	if call.EstimatedQuay != nil && call.EstimatedQuay.Text != "" {
		return call.EstimatedQuay.Text
	}
	if call.PlannedQuay != nil {
		return call.PlannedQuay.Text
	}
	return ""
}
