package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/smart-forensic-ai/sketch-api/internal/infra/blob"
	"github.com/smart-forensic-ai/sketch-api/internal/infra/httpclient"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/model"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/repo"
	"github.com/smart-forensic-ai/sketch-api/internal/pkg/apperr"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type GenerationService interface {
	Generate(ctx context.Context, in GenerateInput) (*GenerateOutput, error)
}

type GenerateInput struct {
	UserID      uuid.UUID
	SessionID   uuid.UUID
	Description string
	// Refine marks an edit of the current face rather than a fresh render.
	Refine bool
	Audio  *multipart.FileHeader
}

type GenerateOutput struct {
	Text    string               `json:"text"`
	Face    *model.CompositeFace `json:"face,omitempty"`
	Session *model.Session       `json:"session"`
}

type generationService struct {
	sessions repo.SessionRepo
	faces    repo.CompositeFaceRepo
	chat     repo.ChatRepo
	logs     LogService
	gen      Generator
	store    ObjectStore
	log      *zap.Logger
	// presign lifetime for the returned face url
	urlExpire time.Duration
}

func NewGenerationService(
	sessions repo.SessionRepo,
	faces repo.CompositeFaceRepo,
	chat repo.ChatRepo,
	logs LogService,
	gen Generator,
	store ObjectStore,
	log *zap.Logger,
	urlExpire time.Duration,
) GenerationService {
	return &generationService{
		sessions:  sessions,
		faces:     faces,
		chat:      chat,
		logs:      logs,
		gen:       gen,
		store:     store,
		log:       log.Named("generation"),
		urlExpire: urlExpire,
	}
}

func (s *generationService) Generate(ctx context.Context, in GenerateInput) (*GenerateOutput, error) {
	desc := strings.TrimSpace(in.Description)
	if in.Audio == nil && desc == "" {
		return nil, fmt.Errorf("%w: description or audio is required", apperr.ErrValidation)
	}

	processing := model.StatusProcessing
	patch := model.SessionPatch{Status: &processing}
	if desc != "" {
		patch.RawInput = &desc
	}
	if _, err := s.sessions.Update(ctx, in.UserID, in.SessionID, patch); err != nil {
		return nil, err
	}

	history, err := s.chat.List(ctx, in.UserID, in.SessionID)
	if err != nil {
		// the cache only adds context; a cold or unreachable cache is not fatal
		s.log.Warn("load conversation failed", zap.String("session_id", in.SessionID.String()), zap.Error(err))
		history = nil
	}

	userTurn := desc
	if userTurn == "" {
		userTurn = "[voice description]"
	}
	s.remember(ctx, in, model.ChatMessage{Role: model.RoleUser, Text: userTurn})

	resp, err := s.callCollaborator(ctx, in, desc, history)
	if err != nil {
		return nil, s.fail(ctx, in, err)
	}

	out := &GenerateOutput{Text: resp.Text}
	action := model.ActionUpdate
	logDesc := resp.Text

	if resp.GeneratedImage != nil {
		meta, err := s.uploadFace(ctx, in, resp.GeneratedImage)
		if err != nil {
			return nil, s.fail(ctx, in, err)
		}
		face, err := s.recordFace(ctx, in, resp.GeneratedImage.Category, meta)
		if err != nil {
			s.markFailed(ctx, in, err)
			return nil, err
		}
		isFirst := face.Version == 1
		out.Face = face

		switch {
		case in.Refine:
			action = model.ActionTransform
		case isFirst:
			action = model.ActionCreate
		default:
			action = model.ActionRegenerate
		}
		logDesc = fmt.Sprintf("version %d generated", face.Version)
		if face.Category != "" {
			logDesc = fmt.Sprintf("version %d generated (%s)", face.Version, face.Category)
		}
		if desc != "" {
			logDesc += ": " + desc
		}
	}

	assistant := model.ChatMessage{Role: model.RoleAssistant, Text: resp.Text}
	if out.Face != nil {
		assistant.ImagePath = deref(out.Face.FaceImagePath)
		assistant.Category = out.Face.Category
	}
	s.remember(ctx, in, assistant)

	if strings.TrimSpace(logDesc) == "" {
		logDesc = "collaborator replied without text"
	}
	if _, err := s.logs.Append(ctx, AppendLogInput{
		UserID:      in.UserID,
		SessionID:   in.SessionID,
		ActionType:  action,
		Description: logDesc,
	}); err != nil {
		s.markFailed(ctx, in, err)
		return nil, err
	}

	inProgress := model.StatusInProgress
	sess, err := s.sessions.Update(ctx, in.UserID, in.SessionID, model.SessionPatch{Status: &inProgress})
	if err != nil {
		return nil, err
	}
	out.Session = sess
	return out, nil
}

func (s *generationService) callCollaborator(ctx context.Context, in GenerateInput, desc string, history []model.ChatMessage) (*httpclient.DescribeResponse, error) {
	if in.Audio != nil {
		return s.describeAudio(ctx, in)
	}

	turns := make([]httpclient.ConversationTurn, 0, len(history))
	for _, m := range history {
		turns = append(turns, httpclient.ConversationTurn{Role: string(m.Role), Text: m.Text})
	}
	return s.gen.Describe(ctx, httpclient.DescribeRequest{
		Message:      desc,
		SessionID:    in.SessionID.String(),
		Conversation: turns,
	})
}

func (s *generationService) describeAudio(ctx context.Context, in GenerateInput) (*httpclient.DescribeResponse, error) {
	if s.store != nil {
		if meta, err := s.store.UploadFormFile(ctx, fmt.Sprintf("audio/%s", in.SessionID), in.Audio); err != nil {
			s.log.Warn("archive audio failed", zap.String("session_id", in.SessionID.String()), zap.Error(err))
		} else {
			s.log.Debug("audio archived", zap.String("key", meta.Key))
		}
	}

	f, err := in.Audio.Open()
	if err != nil {
		return nil, fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	return s.gen.DescribeAudio(ctx, httpclient.AudioRequest{
		SessionID: in.SessionID.String(),
		Filename:  in.Audio.Filename,
		Body:      f,
	})
}

// uploadFace decodes the collaborator image and stores it in object storage.
// Without object storage the image is dropped and the returned meta has no key.
func (s *generationService) uploadFace(ctx context.Context, in GenerateInput, img *httpclient.GeneratedImage) (*blob.UploadedMeta, error) {
	raw, contentType, err := img.Decode()
	if err != nil {
		return nil, err
	}
	if s.store == nil {
		s.log.Warn("object storage is not configured, face image not kept",
			zap.String("session_id", in.SessionID.String()))
		return &blob.UploadedMeta{MIME: contentType, SizeB: int64(len(raw))}, nil
	}
	meta, err := s.store.UploadBytes(ctx, fmt.Sprintf("faces/%s", in.SessionID), raw, contentType)
	if err != nil {
		return nil, fmt.Errorf("upload face: %w", err)
	}
	return meta, nil
}

// recordFace stores the uploaded image as the session's next version.
func (s *generationService) recordFace(ctx context.Context, in GenerateInput, category string, meta *blob.UploadedMeta) (*model.CompositeFace, error) {
	f := &model.CompositeFace{
		SessionID: in.SessionID,
		Category:  category,
		Meta: datatypes.JSONMap{
			"mime":   meta.MIME,
			"size_b": meta.SizeB,
			"refine": in.Refine,
		},
	}
	if meta.Key != "" {
		key := meta.Key
		f.FaceImagePath = &key
		f.Meta["sha256"] = meta.SHA256
	}
	if err := s.faces.InsertNextVersion(ctx, in.UserID, f); err != nil {
		return nil, err
	}

	if f.FaceImagePath != nil && s.store != nil {
		if u, err := s.store.PresignGet(ctx, *f.FaceImagePath, s.urlExpire); err == nil {
			f.ImageURL = u
		}
	}
	return f, nil
}

// fail records a collaborator failure on the session and returns the error callers see.
func (s *generationService) fail(ctx context.Context, in GenerateInput, cause error) error {
	s.markFailed(ctx, in, cause)
	return fmt.Errorf("%w: %v", apperr.ErrExternalService, cause)
}

// markFailed moves the session to Error and appends a failure log.
func (s *generationService) markFailed(ctx context.Context, in GenerateInput, cause error) {
	s.log.Error("generation failed",
		zap.String("session_id", in.SessionID.String()),
		zap.Error(cause))

	// the request context may already be cancelled; bookkeeping still has to land
	bg, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	errStatus := model.StatusError
	if _, err := s.sessions.Update(bg, in.UserID, in.SessionID, model.SessionPatch{Status: &errStatus}); err != nil {
		s.log.Error("mark session error failed", zap.String("session_id", in.SessionID.String()), zap.Error(err))
	}
	if _, err := s.logs.Append(bg, AppendLogInput{
		UserID:      in.UserID,
		SessionID:   in.SessionID,
		ActionType:  model.ActionUpdate,
		Description: "generation failed: " + cause.Error(),
	}); err != nil {
		s.log.Error("log generation failure failed", zap.String("session_id", in.SessionID.String()), zap.Error(err))
	}
}

func (s *generationService) remember(ctx context.Context, in GenerateInput, msg model.ChatMessage) {
	if err := s.chat.Append(ctx, in.UserID, in.SessionID, msg); err != nil {
		s.log.Warn("cache conversation turn failed", zap.String("session_id", in.SessionID.String()), zap.Error(err))
	}
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
