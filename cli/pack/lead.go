package pack

import (
	"bytes"
)

// genLead generates the lead block into the buffer and returns it.
func genLead(name, arch string) *bytes.Buffer {
	// The Lead is a legacy structure that used to describe RPM files
	// before header sections were introduced.
	//
	// struct rpm_lead {
	//   unsigned char magic[4];
	//   unsigned char major, minor;
	//   short type;
	//   short arch_num;
	//   char name[66];
	//   short os_num;
	//   short signature_type;
	//   char reserved[16];
	// } ;

	// A name longer than the field is truncated, not rejected.
	var leadName [66]byte
	copy(leadName[:], name)

	lead := packValues(
		[4]byte{0xed, 0xab, 0xee, 0xdb}, // magic
		uint8(3),                        // major
		uint8(0),                        // minor
		int16(0),                        // type: binary package
		leadArchCodes[arch],             // arch_num
		leadName,                        // name
		int16(1),                        // os_num: linux
		int16(5),                        // signature_type: header-style
		[16]int8{},                      // reserved
	)

	return lead
}
