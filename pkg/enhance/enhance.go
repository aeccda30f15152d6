// Package enhance prepares rendered pages for OCR. All transforms are
// deterministic point operations on 8-bit gray levels.
package enhance

import (
	"image"
	"image/draw"
)

// Grayscale converts img to a single channel using ITU-R 601-2 luma weights.
func Grayscale(img image.Image) *image.Gray {
	if gray, ok := img.(*image.Gray); ok {
		return gray
	}

	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	draw.Draw(gray, bounds, img, bounds.Min, draw.Src)
	return gray
}

// Contrast scales every pixel's distance from the image's mean gray level by
// factor. A factor of 1 returns an identical image.
func Contrast(img *image.Gray, factor float64) *image.Gray {
	mean := float64(meanLevel(img))
	return mapLevels(img, func(v float64) float64 {
		return mean + factor*(v-mean)
	})
}

// Brightness multiplies every pixel by factor.
func Brightness(img *image.Gray, factor float64) *image.Gray {
	return mapLevels(img, func(v float64) float64 {
		return v * factor
	})
}

// Preprocess runs grayscale conversion, then contrast, then brightness.
func Preprocess(img image.Image, contrast, brightness float64) *image.Gray {
	gray := Grayscale(img)
	gray = Contrast(gray, contrast)
	return Brightness(gray, brightness)
}

// meanLevel is the average gray level rounded half up.
func meanLevel(img *image.Gray) uint8 {
	bounds := img.Bounds()
	count := bounds.Dx() * bounds.Dy()
	if count == 0 {
		return 0
	}

	var sum uint64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := img.Pix[img.PixOffset(bounds.Min.X, y) : img.PixOffset(bounds.Min.X, y)+bounds.Dx()]
		for _, v := range row {
			sum += uint64(v)
		}
	}

	return uint8(float64(sum)/float64(count) + 0.5)
}

func mapLevels(img *image.Gray, f func(float64) float64) *image.Gray {
	var table [256]uint8
	for i := range table {
		table[i] = clip(f(float64(i)))
	}

	bounds := img.Bounds()
	out := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		src := img.Pix[img.PixOffset(bounds.Min.X, y) : img.PixOffset(bounds.Min.X, y)+bounds.Dx()]
		dst := out.Pix[out.PixOffset(bounds.Min.X, y) : out.PixOffset(bounds.Min.X, y)+bounds.Dx()]
		for x, v := range src {
			dst[x] = table[v]
		}
	}

	return out
}

// clip truncates toward zero and saturates to the 8-bit range.
func clip(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
