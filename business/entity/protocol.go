package entity

// Dissector identifiers
const (
	ProtoHDLC                 = "thread/hdlc"
	ProtoSpinel               = "thread/spinel"
	ProtoThreadTLV            = "thread/tlv"
	ProtoMLE                  = "thread/mle"
	ProtoNetDataTLV           = "thread/netdata/tlv"
	ProtoNetDataHasRoute      = "thread/netdata/has_route"
	ProtoNetDataPrefix        = "thread/netdata/prefix"
	ProtoNetDataBorderRouter  = "thread/netdata/border_router"
	ProtoNetDataLowpanContext = "thread/netdata/6lowpan"
	ProtoNetDataService       = "thread/netdata/service"
	ProtoNetDataServer        = "thread/netdata/server"
	ProtoIPv6                 = "net/ip6"
	ProtoUDP                  = "net/udp"
	ProtoICMPv6               = "net/icmp6"
	ProtoCoAP                 = "net/coap"
)

// Well-known ports
const (
	PortCoAP = 5683
	PortMLE  = 19788
)

// ProtocolInfo describes a registered dissector
type ProtocolInfo struct {
	ID    string   `json:"id" yaml:"id"`
	Name  string   `json:"name" yaml:"name"`
	Nexts []string `json:"nexts,omitempty" yaml:"nexts,omitempty"`
}
