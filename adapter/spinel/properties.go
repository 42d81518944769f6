package spinel

const (
	// PropertyNotFound name of identifiers missing from the table
	PropertyNotFound = "__not_found__"
)

// Property identifiers with dedicated value decoding or chaining
const (
	PropLastStatus                    uint32 = 0x00
	PropThreadNetworkData             uint32 = 0x56
	PropThreadStableNetworkData       uint32 = 0x58
	PropStreamRaw                     uint32 = 0x71
	PropStreamNet                     uint32 = 0x72
	PropStreamNetInsecure             uint32 = 0x73
	PropThreadLeaderNetworkData       uint32 = 0x150D
	PropThreadStableLeaderNetworkData uint32 = 0x150E
)

// PropertyName returns canonical name of the property identifier
func PropertyName(id uint32) string {
	if name, ok := propertyNames[id]; ok {
		return name
	}
	return PropertyNotFound
}

var propertyNames = map[uint32]string{
	0x00:   "SPINEL_PROP_LAST_STATUS",
	0x01:   "SPINEL_PROP_PROTOCOL_VERSION",
	0x02:   "SPINEL_PROP_NCP_VERSION",
	0x03:   "SPINEL_PROP_INTERFACE_TYPE",
	0x04:   "SPINEL_PROP_VENDOR_ID",
	0x05:   "SPINEL_PROP_CAPS",
	0x06:   "SPINEL_PROP_INTERFACE_COUNT",
	0x07:   "SPINEL_PROP_POWER_STATE",
	0x08:   "SPINEL_PROP_HWADDR",
	0x09:   "SPINEL_PROP_LOCK",
	0x0A:   "SPINEL_PROP_HBO_MEM_MAX",
	0x0B:   "SPINEL_PROP_HBO_BLOCK_MAX",
	0x0C:   "SPINEL_PROP_HOST_POWER_STATE",
	0x0D:   "SPINEL_PROP_MCU_POWER_STATE",
	0x20:   "SPINEL_PROP_PHY_ENABLED",
	0x21:   "SPINEL_PROP_PHY_CHAN",
	0x22:   "SPINEL_PROP_PHY_CHAN_SUPPORTED",
	0x23:   "SPINEL_PROP_PHY_FREQ",
	0x24:   "SPINEL_PROP_PHY_CCA_THRESHOLD",
	0x25:   "SPINEL_PROP_PHY_TX_POWER",
	0x26:   "SPINEL_PROP_PHY_RSSI",
	0x27:   "SPINEL_PROP_PHY_RX_SENSITIVITY",
	0x30:   "SPINEL_PROP_MAC_SCAN_STATE",
	0x31:   "SPINEL_PROP_MAC_SCAN_MASK",
	0x32:   "SPINEL_PROP_MAC_SCAN_PERIOD",
	0x33:   "SPINEL_PROP_MAC_SCAN_BEACON",
	0x34:   "SPINEL_PROP_MAC_15_4_LADDR",
	0x35:   "SPINEL_PROP_MAC_15_4_SADDR",
	0x36:   "SPINEL_PROP_MAC_15_4_PANID",
	0x37:   "SPINEL_PROP_MAC_RAW_STREAM_ENABLED",
	0x38:   "SPINEL_PROP_MAC_PROMISCUOUS_MODE",
	0x39:   "SPINEL_PROP_MAC_ENERGY_SCAN_RESULT",
	0x3A:   "SPINEL_PROP_MAC_DATA_POLL_PERIOD",
	0x40:   "SPINEL_PROP_NET_SAVED",
	0x41:   "SPINEL_PROP_NET_IF_UP",
	0x42:   "SPINEL_PROP_NET_STACK_UP",
	0x43:   "SPINEL_PROP_NET_ROLE",
	0x44:   "SPINEL_PROP_NET_NETWORK_NAME",
	0x45:   "SPINEL_PROP_NET_XPANID",
	0x46:   "SPINEL_PROP_NET_MASTER_KEY",
	0x47:   "SPINEL_PROP_NET_KEY_SEQUENCE_COUNTER",
	0x48:   "SPINEL_PROP_NET_PARTITION_ID",
	0x49:   "SPINEL_PROP_NET_REQUIRE_JOIN_EXISTING",
	0x4A:   "SPINEL_PROP_NET_KEY_SWITCH_GUARDTIME",
	0x4B:   "SPINEL_PROP_NET_PSKC",
	0x50:   "SPINEL_PROP_THREAD_LEADER_ADDR",
	0x51:   "SPINEL_PROP_THREAD_PARENT",
	0x52:   "SPINEL_PROP_THREAD_CHILD_TABLE",
	0x53:   "SPINEL_PROP_THREAD_LEADER_RID",
	0x54:   "SPINEL_PROP_THREAD_LEADER_WEIGHT",
	0x55:   "SPINEL_PROP_THREAD_LOCAL_LEADER_WEIGHT",
	0x56:   "SPINEL_PROP_THREAD_NETWORK_DATA",
	0x57:   "SPINEL_PROP_THREAD_NETWORK_DATA_VERSION",
	0x58:   "SPINEL_PROP_THREAD_STABLE_NETWORK_DATA",
	0x59:   "SPINEL_PROP_THREAD_STABLE_NETWORK_DATA_VERSION",
	0x5A:   "SPINEL_PROP_THREAD_ON_MESH_NETS",
	0x5B:   "SPINEL_PROP_THREAD_OFF_MESH_ROUTES",
	0x5C:   "SPINEL_PROP_THREAD_ASSISTING_PORTS",
	0x5D:   "SPINEL_PROP_THREAD_ALLOW_LOCAL_NET_DATA_CHANGE",
	0x5E:   "SPINEL_PROP_THREAD_MODE",
	0x60:   "SPINEL_PROP_IPV6_LL_ADDR",
	0x61:   "SPINEL_PROP_IPV6_ML_ADDR",
	0x62:   "SPINEL_PROP_IPV6_ML_PREFIX",
	0x63:   "SPINEL_PROP_IPV6_ADDRESS_TABLE",
	0x64:   "SPINEL_PROP_IPV6_ROUTE_TABLE",
	0x65:   "SPINEL_PROP_IPV6_ICMP_PING_OFFLOAD",
	0x66:   "SPINEL_PROP_IPV6_MULTICAST_ADDRESS_TABLE",
	0x67:   "SPINEL_PROP_IPV6_ICMP_PING_OFFLOAD_MODE",
	0x70:   "SPINEL_PROP_STREAM_DEBUG",
	0x71:   "SPINEL_PROP_STREAM_RAW",
	0x72:   "SPINEL_PROP_STREAM_NET",
	0x73:   "SPINEL_PROP_STREAM_NET_INSECURE",
	0x74:   "SPINEL_PROP_STREAM_LOG",
	0x80:   "SPINEL_PROP_MESHCOP_JOINER_STATE",
	0x81:   "SPINEL_PROP_MESHCOP_JOINER_COMMISSIONING",
	0x82:   "SPINEL_PROP_MESHCOP_COMMISSIONER_STATE",
	0x83:   "SPINEL_PROP_MESHCOP_COMMISSIONER_JOINERS",
	0x84:   "SPINEL_PROP_MESHCOP_COMMISSIONER_PROVISIONING_URL",
	0x85:   "SPINEL_PROP_MESHCOP_COMMISSIONER_SESSION_ID",
	0x100:  "SPINEL_PROP_UART_BITRATE",
	0x101:  "SPINEL_PROP_UART_XON_XOFF",
	0x401:  "SPINEL_PROP_15_4_PIB_PHY_CHANNELS_SUPPORTED",
	0x451:  "SPINEL_PROP_15_4_PIB_MAC_PROMISCUOUS_MODE",
	0x45D:  "SPINEL_PROP_15_4_PIB_MAC_SECURITY_ENABLED",
	0x500:  "SPINEL_PROP_CNTR_RESET",
	0x501:  "SPINEL_PROP_CNTR_TX_PKT_TOTAL",
	0x502:  "SPINEL_PROP_CNTR_TX_PKT_ACK_REQ",
	0x503:  "SPINEL_PROP_CNTR_TX_PKT_ACKED",
	0x504:  "SPINEL_PROP_CNTR_TX_PKT_NO_ACK_REQ",
	0x505:  "SPINEL_PROP_CNTR_TX_PKT_DATA",
	0x506:  "SPINEL_PROP_CNTR_TX_PKT_DATA_POLL",
	0x507:  "SPINEL_PROP_CNTR_TX_PKT_BEACON",
	0x508:  "SPINEL_PROP_CNTR_TX_PKT_BEACON_REQ",
	0x509:  "SPINEL_PROP_CNTR_TX_PKT_OTHER",
	0x50A:  "SPINEL_PROP_CNTR_TX_PKT_RETRY",
	0x50B:  "SPINEL_PROP_CNTR_TX_ERR_CCA",
	0x50C:  "SPINEL_PROP_CNTR_TX_PKT_UNICAST",
	0x50D:  "SPINEL_PROP_CNTR_TX_PKT_BROADCAST",
	0x50E:  "SPINEL_PROP_CNTR_TX_ERR_ABORT",
	0x564:  "SPINEL_PROP_CNTR_RX_PKT_TOTAL",
	0x565:  "SPINEL_PROP_CNTR_RX_PKT_DATA",
	0x566:  "SPINEL_PROP_CNTR_RX_PKT_DATA_POLL",
	0x567:  "SPINEL_PROP_CNTR_RX_PKT_BEACON",
	0x568:  "SPINEL_PROP_CNTR_RX_PKT_BEACON_REQ",
	0x569:  "SPINEL_PROP_CNTR_RX_PKT_OTHER",
	0x56A:  "SPINEL_PROP_CNTR_RX_PKT_FILT_WL",
	0x56B:  "SPINEL_PROP_CNTR_RX_PKT_FILT_DA",
	0x56C:  "SPINEL_PROP_CNTR_RX_ERR_EMPTY",
	0x56D:  "SPINEL_PROP_CNTR_RX_ERR_UKWN_NBR",
	0x56E:  "SPINEL_PROP_CNTR_RX_ERR_NVLD_SADDR",
	0x56F:  "SPINEL_PROP_CNTR_RX_ERR_SECURITY",
	0x570:  "SPINEL_PROP_CNTR_RX_ERR_BAD_FCS",
	0x571:  "SPINEL_PROP_CNTR_RX_ERR_OTHER",
	0x572:  "SPINEL_PROP_CNTR_RX_PKT_DUP",
	0x573:  "SPINEL_PROP_CNTR_RX_PKT_UNICAST",
	0x574:  "SPINEL_PROP_CNTR_RX_PKT_BROADCAST",
	0x5C8:  "SPINEL_PROP_CNTR_TX_IP_SEC_TOTAL",
	0x5C9:  "SPINEL_PROP_CNTR_TX_IP_INSEC_TOTAL",
	0x5CA:  "SPINEL_PROP_CNTR_TX_IP_DROPPED",
	0x5CB:  "SPINEL_PROP_CNTR_RX_IP_SEC_TOTAL",
	0x5CC:  "SPINEL_PROP_CNTR_RX_IP_INSEC_TOTAL",
	0x5CD:  "SPINEL_PROP_CNTR_RX_IP_DROPPED",
	0x62C:  "SPINEL_PROP_CNTR_TX_SPINEL_TOTAL",
	0x62D:  "SPINEL_PROP_CNTR_RX_SPINEL_TOTAL",
	0x62E:  "SPINEL_PROP_CNTR_RX_SPINEL_ERR",
	0x62F:  "SPINEL_PROP_CNTR_RX_SPINEL_OUT_OF_ORDER_TID",
	0x630:  "SPINEL_PROP_CNTR_IP_TX_SUCCESS",
	0x631:  "SPINEL_PROP_CNTR_IP_RX_SUCCESS",
	0x632:  "SPINEL_PROP_CNTR_IP_TX_FAILURE",
	0x633:  "SPINEL_PROP_CNTR_IP_RX_FAILURE",
	0x690:  "SPINEL_PROP_MSG_BUFFER_COUNTERS",
	0x691:  "SPINEL_PROP_CNTR_ALL_MAC_COUNTERS",
	0x1000: "SPINEL_PROP_GPIO_CONFIG",
	0x1002: "SPINEL_PROP_GPIO_STATE",
	0x1003: "SPINEL_PROP_GPIO_STATE_SET",
	0x1004: "SPINEL_PROP_GPIO_STATE_CLEAR",
	0x1005: "SPINEL_PROP_TRNG_32",
	0x1006: "SPINEL_PROP_TRNG_128",
	0x1007: "SPINEL_PROP_TRNG_RAW_32",
	0x1008: "SPINEL_PROP_UNSOL_UPDATE_FILTER",
	0x1009: "SPINEL_PROP_UNSOL_UPDATE_LIST",
	0x1200: "SPINEL_PROP_JAM_DETECT_ENABLE",
	0x1201: "SPINEL_PROP_JAM_DETECTED",
	0x1202: "SPINEL_PROP_JAM_DETECT_RSSI_THRESHOLD",
	0x1203: "SPINEL_PROP_JAM_DETECT_WINDOW",
	0x1204: "SPINEL_PROP_JAM_DETECT_BUSY",
	0x1205: "SPINEL_PROP_JAM_DETECT_HISTORY_BITMAP",
	0x1206: "SPINEL_PROP_CHANNEL_MONITOR_SAMPLE_INTERVAL",
	0x1207: "SPINEL_PROP_CHANNEL_MONITOR_RSSI_THRESHOLD",
	0x1208: "SPINEL_PROP_CHANNEL_MONITOR_SAMPLE_WINDOW",
	0x1209: "SPINEL_PROP_CHANNEL_MONITOR_SAMPLE_COUNT",
	0x120A: "SPINEL_PROP_CHANNEL_MONITOR_CHANNEL_OCCUPANCY",
	0x1300: "SPINEL_PROP_MAC_WHITELIST",
	0x1301: "SPINEL_PROP_MAC_WHITELIST_ENABLED",
	0x1302: "SPINEL_PROP_MAC_EXTENDED_ADDR",
	0x1303: "SPINEL_PROP_MAC_SRC_MATCH_ENABLED",
	0x1304: "SPINEL_PROP_MAC_SRC_MATCH_SHORT_ADDRESSES",
	0x1305: "SPINEL_PROP_MAC_SRC_MATCH_EXTENDED_ADDRESSES",
	0x1306: "SPINEL_PROP_MAC_BLACKLIST",
	0x1307: "SPINEL_PROP_MAC_BLACKLIST_ENABLED",
	0x1308: "SPINEL_PROP_MAC_FIXED_RSS",
	0x1309: "SPINEL_PROP_MAC_CCA_FAILURE_RATE",
	0x1500: "SPINEL_PROP_THREAD_CHILD_TIMEOUT",
	0x1501: "SPINEL_PROP_THREAD_RLOC16",
	0x1502: "SPINEL_PROP_THREAD_ROUTER_UPGRADE_THRESHOLD",
	0x1503: "SPINEL_PROP_THREAD_CONTEXT_REUSE_DELAY",
	0x1504: "SPINEL_PROP_THREAD_NETWORK_ID_TIMEOUT",
	0x1505: "SPINEL_PROP_THREAD_ACTIVE_ROUTER_IDS",
	0x1506: "SPINEL_PROP_THREAD_RLOC16_DEBUG_PASSTHRU",
	0x1507: "SPINEL_PROP_THREAD_ROUTER_ROLE_ENABLED",
	0x1508: "SPINEL_PROP_THREAD_ROUTER_DOWNGRADE_THRESHOLD",
	0x1509: "SPINEL_PROP_THREAD_ROUTER_SELECTION_JITTER",
	0x150A: "SPINEL_PROP_THREAD_PREFERRED_ROUTER_ID",
	0x150B: "SPINEL_PROP_THREAD_NEIGHBOR_TABLE",
	0x150C: "SPINEL_PROP_THREAD_CHILD_COUNT_MAX",
	0x150D: "SPINEL_PROP_THREAD_LEADER_NETWORK_DATA",
	0x150E: "SPINEL_PROP_THREAD_STABLE_LEADER_NETWORK_DATA",
	0x150F: "SPINEL_PROP_THREAD_JOINERS",
	0x1510: "SPINEL_PROP_THREAD_COMMISSIONER_ENABLED",
	0x1511: "SPINEL_PROP_THREAD_TMF_PROXY_ENABLED",
	0x1512: "SPINEL_PROP_THREAD_TMF_PROXY_STREAM",
	0x1513: "SPINEL_PROP_THREAD_DISCOVERY_SCAN_JOINER_FLAG",
	0x1514: "SPINEL_PROP_THREAD_DISCOVERY_SCAN_ENABLE_FILTERING",
	0x1515: "SPINEL_PROP_THREAD_DISCOVERY_SCAN_PANID",
	0x1516: "SPINEL_PROP_THREAD_STEERING_DATA",
	0x1517: "SPINEL_PROP_THREAD_ROUTER_TABLE",
	0x1518: "SPINEL_PROP_THREAD_ACTIVE_DATASET",
	0x1519: "SPINEL_PROP_THREAD_PENDING_DATASET",
	0x151A: "SPINEL_PROP_THREAD_MGMT_SET_ACTIVE_DATASET",
	0x151B: "SPINEL_PROP_THREAD_MGMT_SET_PENDING_DATASET",
	0x151C: "SPINEL_PROP_DATASET_ACTIVE_TIMESTAMP",
	0x151D: "SPINEL_PROP_DATASET_PENDING_TIMESTAMP",
	0x151E: "SPINEL_PROP_DATASET_DELAY_TIMER",
	0x151F: "SPINEL_PROP_DATASET_SECURITY_POLICY",
	0x1520: "SPINEL_PROP_DATASET_RAW_TLVS",
	0x1521: "SPINEL_PROP_THREAD_CHILD_TABLE_ADDRESSES",
	0x1522: "SPINEL_PROP_THREAD_NEIGHBOR_TABLE_ERROR_RATES",
	0x1523: "SPINEL_PROP_THREAD_ADDRESS_CACHE_TABLE",
	0x1524: "SPINEL_PROP_THREAD_UDP_PROXY_STREAM",
	0x1525: "SPINEL_PROP_THREAD_MGMT_GET_ACTIVE_DATASET",
	0x1526: "SPINEL_PROP_THREAD_MGMT_GET_PENDING_DATASET",
	0x1527: "SPINEL_PROP_DATASET_DEST_ADDRESS",
	0x1800: "SPINEL_PROP_MESHCOP_COMMISSIONER_ANNOUNCE_BEGIN",
	0x1801: "SPINEL_PROP_MESHCOP_COMMISSIONER_ENERGY_SCAN",
	0x1802: "SPINEL_PROP_MESHCOP_COMMISSIONER_ENERGY_SCAN_RESULT",
	0x1803: "SPINEL_PROP_MESHCOP_COMMISSIONER_PAN_ID_QUERY",
	0x1804: "SPINEL_PROP_MESHCOP_COMMISSIONER_PAN_ID_CONFLICT_RESULT",
	0x1805: "SPINEL_PROP_MESHCOP_COMMISSIONER_MGMT_GET",
	0x1806: "SPINEL_PROP_MESHCOP_COMMISSIONER_MGMT_SET",
	0x1900: "SPINEL_PROP_CHANNEL_MANAGER_NEW_CHANNEL",
	0x1901: "SPINEL_PROP_CHANNEL_MANAGER_DELAY",
	0x1902: "SPINEL_PROP_CHANNEL_MANAGER_SUPPORTED_CHANNELS",
	0x1903: "SPINEL_PROP_CHANNEL_MANAGER_FAVORED_CHANNELS",
	0x1904: "SPINEL_PROP_CHANNEL_MANAGER_CHANNEL_SELECT",
	0x1905: "SPINEL_PROP_CHANNEL_MANAGER_AUTO_SELECT_ENABLED",
	0x1906: "SPINEL_PROP_CHANNEL_MANAGER_AUTO_SELECT_INTERVAL",
	0x1907: "SPINEL_PROP_THREAD_NETWORK_TIME",
	0x1908: "SPINEL_PROP_TIME_SYNC_PERIOD",
	0x1909: "SPINEL_PROP_TIME_SYNC_XTAL_THRESHOLD",
	0x190A: "SPINEL_PROP_CHILD_SUPERVISION_INTERVAL",
	0x190B: "SPINEL_PROP_CHILD_SUPERVISION_CHECK_TIMEOUT",
	0x3BC0: "SPINEL_PROP_NEST_STREAM_MFG",
	0x3BC1: "SPINEL_PROP_NEST_LEGACY_ULA_PREFIX",
	0x3BC2: "SPINEL_PROP_NEST_LEGACY_LAST_NODE_JOINED",
	0x4000: "SPINEL_PROP_DEBUG_TEST_ASSERT",
	0x4001: "SPINEL_PROP_DEBUG_NCP_LOG_LEVEL",
	0x4002: "SPINEL_PROP_DEBUG_TEST_WATCHDOG",
}
