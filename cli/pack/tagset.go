package pack

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"sort"

	"github.com/rpmbuilder/rpmbuilder/cli/util"
)

type rpmValueType int32

type rpmTagType struct {
	ID    int
	Type  rpmValueType
	Value interface{}
}

type rpmTagSetType []rpmTagType

type packedTagType struct {
	Count int
	Data  *bytes.Buffer
}

func (tagSet *rpmTagSetType) addTags(tags ...rpmTagType) {
	*tagSet = append(*tagSet, tags...)
}

/**
 *  See http://ftp.rpm.org/max-rpm/s1-rpm-file-format-rpm-file-format.html
 *  Section `The Header Structure in Depth` contains detailed description of
 *  header structure.
 *
 *  Both the signature header and the main header are a tags set
 *  (`rpmTagSetType`) that is packed by the same rules.
 *
 *  Tag (`rpmTagType`):
 *  - ID: a numeric value that identifies the metadata field
 *  - Type: a numeric value that describes the format of the value
 *  - Value: a value itself
 *
 *  A packed tags set consists of three regions:
 *
 *   +-----------------------+
 *   |         Header        |
 *   +-----------------------+
 *   |         Index         |
 *   +-----------------------+
 *   |         Data          |
 *   +-----------------------+
 *
 *   -- Header ------------------------------------------------------------
 *
 *  - 3-byte magic number: 8e ad e8                     `headerMagic`
 *  - 1-byte version number                             `versionByte`
 *  - 4 bytes that are reserved for future expansion    `reservedBytes`
 *  - 4-byte number that indicates how many tags are packed
 *    (including the region tag)
 *  - 4-byte number indicating how many bytes Data contains
 *
 *   -- Index -------------------------------------------------------------
 *
 *  One fixed-size entry per tag, emitted in ascending tag ID order:
 *
 *  - 4-byte tag.ID
 *  - 4-byte tag.Type
 *  - 4-byte offset that contains the position of the data
 *  - 4-byte count that contains the number of value items
 *
 *   -- Data --------------------------------------------------------------
 *
 *  Data is the concatenated tag values packed to bytes, laid out in index
 *  order, plus the special region tag data described below.
 *
 *  Depending on the tag Type, there are some details to keep in mind:
 *  - For STRING data, each string is terminated with a null byte.
 *  - For INT data, each integer is stored at the natural boundary for its
 *    type: a 64-bit INT on an 8-byte boundary, a 16-bit INT on a 2-byte
 *    boundary, and so on. Misaligned values are preceded by padding bytes.
 *  All data is in network byte order.
 *
 *   -- Region tag --------------------------------------------------------
 *
 *  Every tags set carries one self-referential region tag that installers
 *  use to detect index corruption. Its index entry comes FIRST in the
 *  index (regardless of its ID), with type BIN, count 16 and offset equal
 *  to the length of the ordinary tag data. Its data is a trailing index
 *  entry whose offset is -16*(number of tags including the region tag),
 *  pointing back at the start of the index. This is the single deliberate
 *  exception to the ascending-ID layout rule.
 */

// packTagSet packs all passed tags into a buffer and returns it. Tags are
// laid out in ascending ID order; sharing an ID is an error.
func packTagSet(tagSet rpmTagSetType, regionTagID int) (*bytes.Buffer, error) {
	sorted := make(rpmTagSetType, len(tagSet))
	copy(sorted, tagSet)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})

	for i := 1; i < len(sorted); i++ {
		if sorted[i].ID == sorted[i-1].ID {
			return nil, &DuplicateTagError{ID: sorted[i].ID}
		}
	}

	var tagsData = bytes.NewBuffer(nil)
	var tagsIndex = bytes.NewBuffer(nil)

	// tagsData and tagsIndex
	for _, tag := range sorted {
		packed, err := packTag(tag)
		if err != nil {
			return nil, err
		}

		if boundaries, ok := boundariesByType[tag.Type]; !ok {
			return nil, fmt.Errorf("boundaries for type %d is not set", tag.Type)
		} else if boundaries > 1 {
			alignData(tagsData, boundaries)
		}

		tagIndex := getPackedTagIndex(tag.ID, tag.Type, tagsData.Len(), packed.Count)

		if err := util.ConcatBuffers(tagsData, packed.Data); err != nil {
			return nil, err
		}

		if err := util.ConcatBuffers(tagsIndex, tagIndex); err != nil {
			return nil, err
		}
	}

	// regionTag index
	regionTagIndex := getPackedTagIndex(regionTagID, rpmTypeBin, tagsData.Len(), 16)

	// resIndex is regionTagIndex + tagsIndex
	var resIndex = bytes.NewBuffer(nil)
	if err := util.ConcatBuffers(resIndex, regionTagIndex, tagsIndex); err != nil {
		return nil, err
	}

	// regionTag data
	tagsNum := len(sorted) + 1
	regionTagData := getPackedTagIndex(regionTagID, rpmTypeBin, -tagsNum*16, 16)

	// resData is tagsData + regionTagData
	var resData = bytes.NewBuffer(nil)
	if err := util.ConcatBuffers(resData, tagsData, regionTagData); err != nil {
		return nil, err
	}

	// tagSetHeader
	tagSetHeader := getTagSetHeader(tagsNum, resData.Len())

	// res is tagSetHeader + resIndex + resData
	var res = bytes.NewBuffer(nil)
	if err := util.ConcatBuffers(res, tagSetHeader, resIndex, resData); err != nil {
		return nil, err
	}

	return res, nil
}

// getPackedTagIndex packs a passed tag index into a buffer and returns it.
func getPackedTagIndex(tagID int, tagType rpmValueType, offset int, count int) *bytes.Buffer {
	tagIndex := packValues(
		int32(tagID),
		int32(tagType),
		int32(offset),
		int32(count),
	)

	return tagIndex
}

// getTagSetHeader packs a tags set header into a buffer and returns it.
func getTagSetHeader(tagsNum int, dataLen int) *bytes.Buffer {
	tagSetHeader := packValues(
		headerMagic,
		byte(versionByte),
		int32(reservedBytes),
		int32(tagsNum),
		int32(dataLen),
	)

	return tagSetHeader
}

// packTag packs the passed tag into the tag structure and returns it.
func packTag(tag rpmTagType) (*packedTagType, error) {
	var packed packedTagType
	packed.Data = bytes.NewBuffer(nil)

	switch tag.Type {
	case rpmTypeNull: // NULL
		if tag.Value != nil {
			return nil, fmt.Errorf("NULL value should be nil")
		}

		packed.Count = 1

	case rpmTypeChar: // CHAR
		fallthrough

	case rpmTypeBin: // BIN
		byteArray, ok := tag.Value.([]byte)
		if !ok {
			return nil, fmt.Errorf("BIN and CHAR values should be []byte")
		}

		packed.Count = len(byteArray)
		for _, byteValue := range byteArray {
			if _, err := io.Copy(packed.Data, packValues(byteValue)); err != nil {
				return nil, err
			}
		}

	case rpmTypeStringArray: // STRING_ARRAY
		// Value should be strings array.
		stringsArray, ok := tag.Value.([]string)
		if !ok {
			return nil, fmt.Errorf("STRING_ARRAY value should be []string")
		}

		packed.Count = len(stringsArray)

		for _, v := range stringsArray {
			bytedString := []byte(v)
			bytedString = append(bytedString, 0)
			if _, err := io.Copy(packed.Data, packValues(bytedString)); err != nil {
				return nil, err
			}
		}

	case rpmTypeString: // STRING
		// Value should be string.
		stringValue, ok := tag.Value.(string)
		if !ok {
			return nil, fmt.Errorf("STRING value should be string")
		}

		packed.Count = 1

		bytedString := []byte(stringValue)
		bytedString = append(bytedString, 0)
		if _, err := io.Copy(packed.Data, packValues(bytedString)); err != nil {
			return nil, err
		}

	case rpmTypeInt8: // INT8
		// Value should be []int8.
		int8Values, ok := tag.Value.([]int8)
		if !ok {
			return nil, fmt.Errorf("INT8 value should be []int8")
		}

		packed.Count = len(int8Values)

		if _, err := io.Copy(packed.Data, packValues(int8Values)); err != nil {
			return nil, err
		}

	case rpmTypeInt16: // INT16
		// Value should be []int16.
		int16Values, ok := tag.Value.([]int16)
		if !ok {
			return nil, fmt.Errorf("INT16 value should be []int16")
		}

		packed.Count = len(int16Values)

		for _, value := range int16Values {
			if _, err := io.Copy(packed.Data, packValues(value)); err != nil {
				return nil, err
			}
		}

	case rpmTypeInt32: // INT32
		// Value should be []int32.
		int32Values, ok := tag.Value.([]int32)
		if !ok {
			return nil, fmt.Errorf("INT32 value should be []int32")
		}

		packed.Count = len(int32Values)

		for _, value := range int32Values {
			if _, err := io.Copy(packed.Data, packValues(value)); err != nil {
				return nil, err
			}
		}

	case rpmTypeInt64: // INT64
		// Value should be []int64.
		int64Values, ok := tag.Value.([]int64)
		if !ok {
			return nil, fmt.Errorf("INT64 value should be []int64")
		}

		packed.Count = len(int64Values)

		for _, value := range int64Values {
			if _, err := io.Copy(packed.Data, packValues(value)); err != nil {
				return nil, err
			}
		}

	default:
		return nil, fmt.Errorf("unknown tag type: %d", tag.Type)
	}

	return &packed, nil
}

// packValues puts all passed values into a buffer and returns it.
func packValues(values ...interface{}) *bytes.Buffer {
	buf := bytes.NewBuffer(nil)

	for _, v := range values {
		binary.Write(buf, binary.BigEndian, v)
	}

	return buf
}

// alignData aligns all data in buffer according to the passed boundaries.
func alignData(data *bytes.Buffer, boundaries int) {
	dataLen := data.Len()

	if dataLen%boundaries != 0 {
		alignedDataLen := (dataLen/boundaries + 1) * boundaries

		missedBytesNum := alignedDataLen - dataLen

		paddingBytes := make([]byte, missedBytesNum)
		data.Write(paddingBytes)
	}
}
