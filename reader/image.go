package reader

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	"github.com/tsawler/pdfdocx/core"
	"github.com/tsawler/pdfdocx/pages"
)

// PageImage is an image XObject of a page.
type PageImage struct {
	Name             string // XObject name (e.g., "Im1")
	Width            int
	Height           int
	ColorSpace       string // DeviceGray, DeviceRGB, DeviceCMYK, etc.
	BitsPerComponent int
	Data             []byte // decoded pixels, or the JPEG file for DCTDecode
	Filter           string // last filter of the chain
}

// PageImages returns the image XObjects of a page sorted by resource name.
// Images that cannot be decoded are skipped.
func (r *Reader) PageImages(page *pages.Page) []PageImage {
	resources := page.Resources()
	if resources == nil {
		return nil
	}
	xobjects, ok := r.table.Resolve(resources.Get("XObject")).(core.Dict)
	if !ok {
		return nil
	}

	var images []PageImage
	for _, name := range xobjects.Keys() {
		stream, ok := r.table.Resolve(xobjects.Get(name)).(*core.Stream)
		if !ok {
			continue
		}
		if subtype, _ := stream.Dict.GetName("Subtype"); subtype != "Image" {
			continue
		}
		img, err := r.extractImage(name, stream)
		if err != nil {
			continue
		}
		images = append(images, *img)
	}
	return images
}

func (r *Reader) extractImage(name string, stream *core.Stream) (*PageImage, error) {
	dict := stream.Dict
	width, ok1 := core.Number(r.table.Resolve(dict.Get("Width")))
	height, ok2 := core.Number(r.table.Resolve(dict.Get("Height")))
	if !ok1 || !ok2 || width <= 0 || height <= 0 {
		return nil, fmt.Errorf("image missing Width or Height")
	}

	bpc := 8
	if n, ok := core.Number(r.table.Resolve(dict.Get("BitsPerComponent"))); ok {
		bpc = int(n)
	}
	if mask, ok := dict.GetBool("ImageMask"); ok && bool(mask) {
		bpc = 1
	}

	filter := ""
	if names := stream.Filters(); len(names) > 0 {
		filter = names[len(names)-1]
	}

	data, err := stream.Decode()
	if err != nil {
		return nil, fmt.Errorf("failed to decode image stream: %w", err)
	}

	return &PageImage{
		Name:             name,
		Width:            int(width),
		Height:           int(height),
		ColorSpace:       r.colorSpace(dict.Get("ColorSpace")),
		BitsPerComponent: bpc,
		Data:             data,
		Filter:           filter,
	}, nil
}

// colorSpace reduces a color space to a device family name.
func (r *Reader) colorSpace(obj core.Object) string {
	switch v := r.table.Resolve(obj).(type) {
	case core.Name:
		return string(v)
	case core.Array:
		if len(v) == 0 {
			break
		}
		name, _ := v[0].(core.Name)
		switch {
		case name == "Indexed" && len(v) > 1:
			return r.colorSpace(v[1])
		case name == "ICCBased" && len(v) > 1:
			if s, ok := r.table.Resolve(v[1]).(*core.Stream); ok {
				switch n, _ := core.Number(s.Dict.Get("N")); n {
				case 3:
					return "DeviceRGB"
				case 4:
					return "DeviceCMYK"
				}
			}
			return "DeviceGray"
		}
		return string(name)
	}
	return "DeviceGray"
}

// ToPNG converts the image to PNG, the input format OCR engines expect.
func (img *PageImage) ToPNG() ([]byte, error) {
	var goImg image.Image
	var err error

	switch {
	case img.Filter == "DCTDecode":
		goImg, err = jpeg.Decode(bytes.NewReader(img.Data))
	case img.ColorSpace == "DeviceRGB" || img.ColorSpace == "CalRGB":
		goImg, err = img.toRGB()
	case img.ColorSpace == "DeviceCMYK":
		goImg, err = img.toCMYK()
	default:
		goImg, err = img.toGray()
	}
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, goImg); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// toGray expands 1, 2, 4 or 8 bit gray samples. Rows are byte aligned.
func (img *PageImage) toGray() (*image.Gray, error) {
	bpc := img.BitsPerComponent
	switch bpc {
	case 1, 2, 4, 8:
	default:
		return nil, fmt.Errorf("unsupported bits per component: %d", bpc)
	}

	rowBytes := (img.Width*bpc + 7) / 8
	if len(img.Data) < rowBytes*img.Height {
		return nil, fmt.Errorf("insufficient data: got %d, expected %d", len(img.Data), rowBytes*img.Height)
	}

	goImg := image.NewGray(image.Rect(0, 0, img.Width, img.Height))
	maxVal := 1<<bpc - 1
	for y := 0; y < img.Height; y++ {
		row := img.Data[y*rowBytes:]
		for x := 0; x < img.Width; x++ {
			bit := x * bpc
			v := int(row[bit/8]>>(8-bpc-bit%8)) & maxVal
			goImg.Pix[y*goImg.Stride+x] = uint8(v * 255 / maxVal)
		}
	}
	return goImg, nil
}

func (img *PageImage) toRGB() (*image.RGBA, error) {
	if img.BitsPerComponent != 8 {
		return nil, fmt.Errorf("unsupported bits per component for RGB: %d", img.BitsPerComponent)
	}
	n := img.Width * img.Height
	if len(img.Data) < n*3 {
		return nil, fmt.Errorf("insufficient data for RGB image: got %d, expected %d", len(img.Data), n*3)
	}

	goImg := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for i := 0; i < n; i++ {
		copy(goImg.Pix[i*4:i*4+3], img.Data[i*3:i*3+3])
		goImg.Pix[i*4+3] = 255
	}
	return goImg, nil
}

func (img *PageImage) toCMYK() (*image.RGBA, error) {
	if img.BitsPerComponent != 8 {
		return nil, fmt.Errorf("unsupported bits per component for CMYK: %d", img.BitsPerComponent)
	}
	n := img.Width * img.Height
	if len(img.Data) < n*4 {
		return nil, fmt.Errorf("insufficient data for CMYK image: got %d, expected %d", len(img.Data), n*4)
	}

	goImg := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for i := 0; i < n; i++ {
		p := img.Data[i*4 : i*4+4]
		r, g, b := color.CMYKToRGB(p[0], p[1], p[2], p[3])
		goImg.Pix[i*4] = r
		goImg.Pix[i*4+1] = g
		goImg.Pix[i*4+2] = b
		goImg.Pix[i*4+3] = 255
	}
	return goImg, nil
}
