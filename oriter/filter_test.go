package oriter

import "github.com/RoaringBitmap/roaring/v2"

func bitmapOf(ids ...uint32) *roaring.Bitmap {
	bm := roaring.New()
	for _, id := range ids {
		bm.Add(id)
	}
	return bm
}
