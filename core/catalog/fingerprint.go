package catalog

import (
	"encoding/binary"
	"encoding/hex"
	"sort"

	"github.com/zeebo/blake3"
)

// computeFingerprint hashes the chapter table followed by the sorted missing
// verse set. The id is deliberately left out.
func computeFingerprint(c *Catalog) string {
	buf := make([]byte, 0, 8*1024)
	for _, chapters := range c.lastVerses {
		buf = binary.AppendUvarint(buf, uint64(len(chapters)))
		for _, last := range chapters {
			buf = binary.AppendUvarint(buf, uint64(last))
		}
	}

	refs := make([]ChapterRef, 0, len(c.missing))
	for ref := range c.missing {
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Book != refs[j].Book {
			return refs[i].Book < refs[j].Book
		}
		return refs[i].Chapter < refs[j].Chapter
	})
	for _, ref := range refs {
		buf = binary.AppendUvarint(buf, uint64(ref.Book))
		buf = binary.AppendUvarint(buf, uint64(ref.Chapter))
		for _, v := range c.missing[ref] {
			buf = binary.AppendUvarint(buf, uint64(v))
		}
		buf = append(buf, 0)
	}

	h := blake3.Sum256(buf)
	return hex.EncodeToString(h[:])
}
