package model

// Wire representation of a TRIAS stop event response. The response mixes
// two namespaces (the VDV TRIAS namespace and the generic SIRI service
// interface namespace); encoding/xml matches on local names so both are
// handled by the same structs.
//
// Optional nodes are pointers: absence is a typed state here and is only
// rendered as a display default ("?" / empty string) at the transform
// boundary.

// Trias is the document root of a TRIAS response.
type Trias struct {
	ServiceDelivery TriasServiceDelivery `xml:"ServiceDelivery"`
}

// TriasServiceDelivery a representation of a TRIAS ServiceDelivery item
type TriasServiceDelivery struct {
	ResponseTimestamp string          `xml:"ResponseTimestamp"`
	ProducerRef       string          `xml:"ProducerRef"`
	DeliveryPayload   DeliveryPayload `xml:"DeliveryPayload"`
}

// DeliveryPayload a representation of a TRIAS DeliveryPayload item
type DeliveryPayload struct {
	StopEventResponse StopEventResponse `xml:"StopEventResponse"`
}

// StopEventResponse a representation of a TRIAS StopEventResponse item
type StopEventResponse struct {
	StopEventResults []StopEventResult `xml:"StopEventResult"`
}

// StopEventResult a representation of a TRIAS StopEventResult item
type StopEventResult struct {
	ResultID  string     `xml:"ResultId"`
	StopEvent *StopEvent `xml:"StopEvent"`
}

// StopEvent a representation of a TRIAS StopEvent item
type StopEvent struct {
	ThisCall *ThisCall     `xml:"ThisCall"`
	Service  *TriasService `xml:"Service"`
}

// TriasService a representation of a TRIAS Service item
type TriasService struct {
	OperatingDayRef   string             `xml:"OperatingDayRef"`
	JourneyRef        string             `xml:"JourneyRef"`
	LineRef           string             `xml:"LineRef"`
	Mode              *Mode              `xml:"Mode"`
	PublishedLineName *InternationalText `xml:"PublishedLineName"`
	DestinationText   *InternationalText `xml:"DestinationText"`
	Attributes        []ServiceAttribute `xml:"Attribute"`
}

// Mode a representation of a TRIAS Mode item
type Mode struct {
	PtMode string             `xml:"PtMode"`
	Name   *InternationalText `xml:"Name"`
}

// ServiceAttribute a representation of a TRIAS Attribute item
type ServiceAttribute struct {
	Text *InternationalText `xml:"Text"`
	Code string             `xml:"Code"`
}

// ThisCall a representation of a TRIAS ThisCall item
type ThisCall struct {
	CallAtStop *CallAtStop `xml:"CallAtStop"`
}

// CallAtStop a representation of a TRIAS CallAtStop item
type CallAtStop struct {
	StopPointRef     string             `xml:"StopPointRef"`
	StopPointName    *InternationalText `xml:"StopPointName"`
	PlannedQuay      *InternationalText `xml:"PlannedQuay"`
	EstimatedQuay    *InternationalText `xml:"EstimatedQuay"`
	ServiceDeparture *ServiceDeparture  `xml:"ServiceDeparture"`
}

// ServiceDeparture a representation of a TRIAS ServiceDeparture item.
// Timestamps stay as raw strings on the wire struct; a malformed value is
// dropped during the transform rather than aborting the whole parse.
type ServiceDeparture struct {
	TimetabledTime string  `xml:"TimetabledTime"`
	EstimatedTime  *string `xml:"EstimatedTime"`
}

// InternationalText a representation of a TRIAS Text wrapper item
type InternationalText struct {
	Text string `xml:"Text"`
}
