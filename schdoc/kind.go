package schdoc

import "strconv"

// Kind is the value of a record's RECORD property.
type Kind int

// Record kinds. Only the kinds with a dedicated type are decoded into typed
// fields; every other value decodes to *Generic.
const (
	KindHeader               Kind = 0
	KindComponent            Kind = 1
	KindPin                  Kind = 2
	KindIEEESymbol           Kind = 3
	KindLabel                Kind = 4
	KindBezier               Kind = 5
	KindPolyline             Kind = 6
	KindPolygon              Kind = 7
	KindEllipse              Kind = 8
	KindPieChart             Kind = 9
	KindRoundRect            Kind = 10
	KindEllipticalArc        Kind = 11
	KindArc                  Kind = 12
	KindLine                 Kind = 13
	KindRectangle            Kind = 14
	KindSheetSymbol          Kind = 15
	KindSheetEntry           Kind = 16
	KindPowerPort            Kind = 17
	KindPort                 Kind = 18
	KindNoERC                Kind = 22
	KindNetLabel             Kind = 25
	KindBus                  Kind = 26
	KindWire                 Kind = 27
	KindTextFrame            Kind = 28
	KindJunction             Kind = 29
	KindImage                Kind = 30
	KindSheet                Kind = 31
	KindSheetName            Kind = 32
	KindSheetFileName        Kind = 33
	KindDesignator           Kind = 34
	KindBusEntry             Kind = 37
	KindTemplate             Kind = 39
	KindParameter            Kind = 41
	KindWarningSign          Kind = 43
	KindImplementationList   Kind = 44
	KindImplementation       Kind = 45
	KindImplParams           Kind = 46
	KindImplParam            Kind = 47
	KindImplLink             Kind = 48
	KindSheetEntryConnection Kind = 215
	KindSheetEntryPort       Kind = 216
	KindSheetEntryLabel      Kind = 217
	KindSheetEntryLine       Kind = 218

	// KindNone marks a property record after the first that has no RECORD key.
	KindNone Kind = -1
	// KindBinary marks a record whose outer type byte is not a property list.
	KindBinary Kind = -2
)

var kindNames = map[Kind]string{
	KindHeader:               "Header",
	KindComponent:            "Component",
	KindPin:                  "Pin",
	KindIEEESymbol:           "IEEESymbol",
	KindLabel:                "Label",
	KindBezier:               "Bezier",
	KindPolyline:             "Polyline",
	KindPolygon:              "Polygon",
	KindEllipse:              "Ellipse",
	KindPieChart:             "PieChart",
	KindRoundRect:            "RoundRect",
	KindEllipticalArc:        "EllipticalArc",
	KindArc:                  "Arc",
	KindLine:                 "Line",
	KindRectangle:            "Rectangle",
	KindSheetSymbol:          "SheetSymbol",
	KindSheetEntry:           "SheetEntry",
	KindPowerPort:            "PowerPort",
	KindPort:                 "Port",
	KindNoERC:                "NoERC",
	KindNetLabel:             "NetLabel",
	KindBus:                  "Bus",
	KindWire:                 "Wire",
	KindTextFrame:            "TextFrame",
	KindJunction:             "Junction",
	KindImage:                "Image",
	KindSheet:                "Sheet",
	KindSheetName:            "SheetName",
	KindSheetFileName:        "SheetFileName",
	KindDesignator:           "Designator",
	KindBusEntry:             "BusEntry",
	KindTemplate:             "Template",
	KindParameter:            "Parameter",
	KindWarningSign:          "WarningSign",
	KindImplementationList:   "ImplementationList",
	KindImplementation:       "Implementation",
	KindImplParams:           "ImplParams",
	KindImplParam:            "ImplParam",
	KindImplLink:             "ImplLink",
	KindSheetEntryConnection: "SheetEntryConnection",
	KindSheetEntryPort:       "SheetEntryPort",
	KindSheetEntryLabel:      "SheetEntryLabel",
	KindSheetEntryLine:       "SheetEntryLine",
	KindNone:                 "None",
	KindBinary:               "Binary",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Record" + strconv.Itoa(int(k))
}
