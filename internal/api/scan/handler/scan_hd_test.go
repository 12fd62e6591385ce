package scanHandler

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"testing"

	"ProjectCube/internal/api/scan"
	"ProjectCube/internal/entity"
	"ProjectCube/internal/middleware"
	"ProjectCube/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"
)

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")
	os.Exit(m.Run())
}

type fakeScanService struct {
	sessionID string
	req       scan.ScanFaceRequest
	frame     []byte
	result    entity.FaceScanResult
	err       error
}

func (f *fakeScanService) CreateSession(context.Context) (entity.ScanSession, int, error) {
	return entity.ScanSession{ID: "sess-1"}, 1800, nil
}

func (f *fakeScanService) GetSession(context.Context, string) (entity.ScanSession, error) {
	return entity.ScanSession{ID: "sess-1"}, nil
}

func (f *fakeScanService) ScanFace(_ context.Context, sessionID string, req scan.ScanFaceRequest, frame []byte) (entity.FaceScanResult, error) {
	f.sessionID = sessionID
	f.req = req
	f.frame = frame
	return f.result, f.err
}

func (f *fakeScanService) DeleteSession(context.Context, string) error {
	return nil
}

func (f *fakeScanService) PreviewFrame([]byte) (scan.PreviewResult, error) {
	return scan.PreviewResult{}, nil
}

func newTestApp(fake *fakeScanService) *fiber.App {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	handler := New(logger, validator.New(), middleware.New(logger), fake, utils.New())

	app := fiber.New()
	handler.Start(app.Group("/api/v1"))
	return app
}

func pngFrame(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 60, 60))
	for y := 0; y < 60; y++ {
		for x := 0; x < 60; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 255, G: 215, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func multipartScanRequest(t *testing.T, target string, frame []byte, fields map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="frame.png"`)
	header.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(frame)
	require.NoError(t, err)

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(fiber.MethodPost, target, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestScanFaceMultipartCarriesRegion(t *testing.T) {
	fake := &fakeScanService{result: entity.FaceScanResult{FaceID: entity.FaceUp}}
	app := newTestApp(fake)
	frame := pngFrame(t)

	req := multipartScanRequest(t, "/api/v1/scan/session/sess-1/face", frame, map[string]string{
		"face_id": "U",
		"archive": "true",
		"region":  `{"x":10,"y":20,"width":30,"height":30}`,
	})

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, "sess-1", fake.sessionID)
	assert.Equal(t, "U", fake.req.FaceID)
	assert.True(t, fake.req.Archive)
	assert.Equal(t, frame, fake.frame)

	require.NotNil(t, fake.req.Region)
	assert.Equal(t, scan.SampleRegion{X: 10, Y: 20, Width: 30, Height: 30}, *fake.req.Region)
}

func TestScanFaceMultipartWithoutRegion(t *testing.T) {
	fake := &fakeScanService{result: entity.FaceScanResult{FaceID: entity.FaceUp}}
	app := newTestApp(fake)

	req := multipartScanRequest(t, "/api/v1/scan/session/sess-1/face", pngFrame(t), map[string]string{
		"face_id": "U",
	})

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Nil(t, fake.req.Region)
}

func TestScanFaceMultipartRejectsBadRegion(t *testing.T) {
	cases := []struct {
		name   string
		region string
	}{
		{name: "not json", region: "10,20,30,30"},
		{name: "zero width", region: `{"x":10,"y":20,"width":0,"height":30}`},
		{name: "negative origin", region: `{"x":-1,"y":0,"width":30,"height":30}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeScanService{}
			app := newTestApp(fake)

			req := multipartScanRequest(t, "/api/v1/scan/session/sess-1/face", pngFrame(t), map[string]string{
				"face_id": "U",
				"region":  tc.region,
			})

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			assert.Empty(t, fake.sessionID)
		})
	}
}

func TestScanFaceJSONBody(t *testing.T) {
	fake := &fakeScanService{result: entity.FaceScanResult{FaceID: entity.FaceFront}}
	app := newTestApp(fake)
	frame := pngFrame(t)

	payload, err := json.Marshal(scan.ScanFaceRequest{
		FaceID:      "F",
		ImageBase64: base64.StdEncoding.EncodeToString(frame),
		Region:      &scan.SampleRegion{X: 5, Y: 5, Width: 40, Height: 40},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodPost, "/api/v1/scan/session/sess-1/face", bytes.NewReader(payload))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, "F", fake.req.FaceID)
	assert.Equal(t, frame, fake.frame)
	require.NotNil(t, fake.req.Region)
	assert.Equal(t, 40, fake.req.Region.Width)
}
