package scanService

import (
	"ProjectCube/internal/api/scan"
	"ProjectCube/internal/entity"
	redisPkg "ProjectCube/pkg/redis"
	s3Pkg "ProjectCube/pkg/s3"
	"ProjectCube/pkg/utils"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const sessionTTL = 30 * time.Minute

type IScanService interface {
	CreateSession(ctx context.Context) (entity.ScanSession, int, error)
	GetSession(ctx context.Context, sessionID string) (entity.ScanSession, error)
	ScanFace(ctx context.Context, sessionID string, req scan.ScanFaceRequest, frame []byte) (entity.FaceScanResult, error)
	DeleteSession(ctx context.Context, sessionID string) error
	PreviewFrame(frame []byte) (scan.PreviewResult, error)
}

type scanService struct {
	log         *logrus.Logger
	redisServer redisPkg.IRedis
	s3Client    s3Pkg.ItfS3
	utils       utils.IUtils
}

func NewScanService(
	log *logrus.Logger,
	redisServer redisPkg.IRedis,
	s3Client s3Pkg.ItfS3,
	utils utils.IUtils,
) IScanService {
	return &scanService{
		log:         log,
		redisServer: redisServer,
		s3Client:    s3Client,
		utils:       utils,
	}
}
