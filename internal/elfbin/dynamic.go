package elfbin

import "github.com/xyproto/elfload/internal/loaderr"

// dynamicEntrySize is the on-disk size of one Elf64_Dyn record: two
// 8-byte words, tag then value.
const dynamicEntrySize = 16

// parseDynamic splits a Dynamic segment's raw payload into 16-byte
// chunks and decodes each as (tag, value). The first Null-tagged entry
// terminates the list and is not itself appended. A payload whose
// length is not a multiple of 16 fails with InvalidDataSize.
func parseDynamic(data []byte) ([]DynamicEntry, error) {
	if len(data)%dynamicEntrySize != 0 {
		return nil, loaderr.InvalidDataSize(len(data))
	}

	var entries []DynamicEntry
	for i := 0; i+dynamicEntrySize <= len(data); i += dynamicEntrySize {
		chunk := data[i : i+dynamicEntrySize]
		rawTag := leU64(chunk[0:8])
		value := leU64(chunk[8:16])

		tag, err := parseDynamicTag(rawTag)
		if err != nil {
			return nil, err
		}
		if tag == DynamicTagNull {
			break
		}
		entries = append(entries, DynamicEntry{Tag: tag, Value: value})
	}
	return entries, nil
}
