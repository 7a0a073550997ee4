// File: handlers/stt.go
package handlers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"tablevoice/config"
	"tablevoice/utils"

	speech "cloud.google.com/go/speech/apiv1"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	speechpb "google.golang.org/genproto/googleapis/cloud/speech/v1"
)

const (
	MaxAudioFileSize = 5 * 1024 * 1024 // 5MB (conservative buffer)
	AllowedExtension = ".wav"
)

// convertAudio normalizes the upload to 16kHz mono PCM, the format the
// recognizer expects.
func convertAudio(inputPath, outputPath string) error {
	_, err := exec.LookPath("ffmpeg")
	if err != nil {
		return fmt.Errorf("ffmpeg not found in system PATH: %v", err)
	}

	cmd := exec.Command("ffmpeg",
		"-y",
		"-i", inputPath,
		"-acodec", "pcm_s16le",
		"-ac", "1",
		"-ar", "16000",
		outputPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg conversion failed: %s", stderr.String())
	}
	return nil
}

// TranscribeHandler turns an uploaded WAV clip into text. The transcript is
// meant to be fed straight into the assistant turn endpoint as the utterance.
func TranscribeHandler(c *gin.Context) {
	logger := utils.GetLogger()
	language := c.DefaultPostForm("language", "en-US")

	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "audio file is required", err.Error())
		return
	}
	defer file.Close()

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != AllowedExtension {
		utils.JSONError(c, http.StatusBadRequest, "invalid file type",
			fmt.Sprintf("expected %s, got %s", AllowedExtension, ext))
		return
	}

	tempInput, err := os.CreateTemp("", "audio-*.wav")
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create temp file", err.Error())
		return
	}
	defer os.Remove(tempInput.Name())
	defer tempInput.Close()

	if _, err := io.Copy(tempInput, io.LimitReader(file, MaxAudioFileSize)); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to save audio file", err.Error())
		return
	}

	tempOutput, err := os.CreateTemp("", "converted-*.wav")
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create output temp file", err.Error())
		return
	}
	defer os.Remove(tempOutput.Name())
	defer tempOutput.Close()

	if err := convertAudio(tempInput.Name(), tempOutput.Name()); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "audio conversion failed", err.Error())
		return
	}

	audioData, err := os.ReadFile(tempOutput.Name())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to read converted audio", err.Error())
		return
	}

	ctx := context.Background()
	client, err := speech.NewClient(ctx, option.WithCredentialsFile(config.AppConfig.GoogleServiceAccountFile))
	if err != nil {
		logger.Error("failed to initialize speech client", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to initialize speech client", err.Error())
		return
	}
	defer client.Close()

	req := &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:          speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:   16000,
			LanguageCode:      language,
			AudioChannelCount: 1,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{
				Content: audioData,
			},
		},
	}

	resp, err := client.Recognize(ctx, req)
	if err != nil {
		logger.Error("speech recognition failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "speech recognition failed", err.Error())
		return
	}

	var transcript strings.Builder
	for _, result := range resp.Results {
		for _, alt := range result.Alternatives {
			transcript.WriteString(alt.Transcript + " ")
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"transcription": strings.TrimSpace(transcript.String()),
	})
}
