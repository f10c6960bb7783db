package pack

const (
	defaultFileUser   = "root"
	defaultFileGroup  = "root"
	defaultFileLang   = ""
	defaultFileLinkTo = ""
	emptyDigest       = ""

	headerSignatures = 62
	headerImmutable  = 63

	hashAlgoSHA256 = 8

	// Per-file flag bits consumed by installers.
	fileFlagNone   = 0
	fileFlagConfig = 1 << 0
	fileFlagDoc    = 1 << 1

	rpmTypeNull        = 0
	rpmTypeChar        = 1
	rpmTypeInt8        = 2
	rpmTypeInt16       = 3
	rpmTypeInt32       = 4
	rpmTypeInt64       = 5
	rpmTypeString      = 6
	rpmTypeBin         = 7
	rpmTypeStringArray = 8
	rpmTypeI18nString  = 9

	signatureTagSHA1        = 269
	signatureTagSHA256      = 273
	signatureTagSize        = 1000
	signatureTagPGP         = 1002
	signatureTagMD5         = 1004
	signatureTagPayloadSize = 1007

	tagName              = 1000
	tagVersion           = 1001
	tagRelease           = 1002
	tagEpoch             = 1003
	tagSummary           = 1004
	tagDescription       = 1005
	tagSize              = 1009
	tagLicense           = 1014
	tagGroup             = 1016
	tagOs                = 1021
	tagArch              = 1022
	tagPreIn             = 1023
	tagPostIn            = 1024
	tagPreUn             = 1025
	tagPostUn            = 1026
	tagFileSizes         = 1028
	tagFileModes         = 1030
	tagFileRdevs         = 1033
	tagFileMtimes        = 1034
	tagFileDigests       = 1035
	tagFileLinkTos       = 1036
	tagFileFlags         = 1037
	tagFileUserNames     = 1039
	tagFileGroupNames    = 1040
	tagProvideName       = 1047
	tagRequireFlags      = 1048
	tagRequireName       = 1049
	tagRequireVersion    = 1050
	tagConflictFlags     = 1053
	tagConflictName      = 1054
	tagConflictVersion   = 1055
	tagChangelogTime     = 1080
	tagChangelogName     = 1081
	tagChangelogText     = 1082
	tagPreInProg         = 1085
	tagPostInProg        = 1086
	tagPreUnProg         = 1087
	tagPostUnProg        = 1088
	tagObsoleteName      = 1090
	tagFileDevices       = 1095
	tagFileInodes        = 1096
	tagFileLangs         = 1097
	tagProvideFlags      = 1112
	tagProvideVersion    = 1113
	tagObsoleteFlags     = 1114
	tagObsoleteVersion   = 1115
	tagDirIndexes        = 1116
	tagBaseNames         = 1117
	tagDirNames          = 1118
	tagPayloadFormat     = 1124
	tagPayloadCompressor = 1125
	tagPayloadFlags      = 1126
	tagRecommendName     = 5046
	tagRecommendVersion  = 5047
	tagRecommendFlags    = 5048
	tagSuggestName       = 5049
	tagSuggestVersion    = 5050
	tagSuggestFlags      = 5051
	tagSupplementName    = 5052
	tagSupplementVersion = 5053
	tagSupplementFlags   = 5054
	tagEnhanceName       = 5055
	tagEnhanceVersion    = 5056
	tagEnhanceFlags      = 5057
	tagPayloadDigest     = 5092
	tagPayloadDigestAlgo = 5093

	rpmSenseLess         = 0x02
	rpmSenseGreater      = 0x04
	rpmSenseEqual        = 0x08
	rpmSenseFindRequires = 0x4000
	rpmSenseFindProvides = 0x8000
	rpmSenseMissingOK    = 0x80000

	// Interpreter recorded for all scriptlet tags.
	scriptletProg = "/bin/sh"
)

var (
	headerMagic   = []byte{0x8e, 0xad, 0xe8}
	versionByte   = 0x01
	reservedBytes = 0

	boundariesByType = map[rpmValueType]int{
		rpmTypeNull:        1,
		rpmTypeBin:         1,
		rpmTypeChar:        1,
		rpmTypeString:      1,
		rpmTypeStringArray: 1,
		rpmTypeInt8:        1,
		rpmTypeInt16:       2,
		rpmTypeInt32:       4,
		rpmTypeInt64:       8,
	}

	// Architecture codes of the lead, from rpmrc arch_canon.
	leadArchCodes = map[string]int16{
		"noarch":  0,
		"i386":    1,
		"i686":    1,
		"x86_64":  1,
		"armv5tl": 12,
		"armv6hl": 12,
		"armv7hl": 12,
		"aarch64": 12,
	}
)
