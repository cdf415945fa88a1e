package chrom

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// descriptorXML is the structural form of a chromatogram descriptor
// document. Curve and event blocks are matched positionally (",any") the
// way the instrument format nests them, so tag-name drift between software
// versions does not break the parse.
type descriptorXML struct {
	Curves struct {
		Items []curveXML `xml:",any"`
	} `xml:"Curves"`
	EventCurves struct {
		Items []eventCurveXML `xml:",any"`
	} `xml:"EventCurves"`
}

type curveXML struct {
	DataType      string         `xml:"CurveDataType,attr"`
	Name          string         `xml:"Name"`
	AmplitudeUnit string         `xml:"AmplitudeUnit"`
	CurvePoints   curvePointsXML `xml:"CurvePoints"`
}

type curvePointsXML struct {
	Points []anyElement `xml:",any"`
}

// anyElement captures an element positionally: the coordinate filename
// lives in the second child of the first curve-point block.
type anyElement struct {
	XMLName  xml.Name
	Text     string       `xml:",chardata"`
	Children []anyElement `xml:",any"`
}

type eventCurveXML struct {
	Name           string `xml:"Name"`
	IsOriginalData string `xml:"IsOriginalData"`
	Events         struct {
		Items []eventXML `xml:",any"`
	} `xml:"Events"`
}

type eventXML struct {
	EventVolume string `xml:"EventVolume"`
	EventText   string `xml:"EventText"`
}

func parseDescriptor(raw []byte) (*descriptorXML, error) {
	var doc descriptorXML
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse descriptor: %w", err)
	}

	return &doc, nil
}

// coordinateSource returns the filename of the entry holding the curve's
// coordinate arrays: the second child element of the first curve-point
// block.
func (c *curveXML) coordinateSource() (string, bool) {
	if len(c.CurvePoints.Points) == 0 {
		return "", false
	}
	first := c.CurvePoints.Points[0]
	if len(first.Children) < 2 {
		return "", false
	}

	return strings.TrimSpace(first.Children[1].Text), true
}
